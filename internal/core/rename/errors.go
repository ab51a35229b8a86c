package rename

import "errors"

// ErrDirectoryNotFound is returned when the target path does not exist
// or is not a directory. It is the only run-fatal error: every per-file
// failure is recorded on its entry and the run continues.
var ErrDirectoryNotFound = errors.New("directory not found")

// ReasonNameCollision marks an entry whose target name would overwrite
// an existing file that is not being renamed away in the same run.
const ReasonNameCollision = "NameCollision"
