// iojson are utilities for writing JSON output from a command line
// interface perspective
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Error is the standard error format type that is returned when errors
// happen.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

func jsonError(msg string, jsonErr error) string {
	// Use json.Marshal to properly escape strings
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteError writes a standard error blob to stderr.
func WriteError(str string, data map[string]any) error {
	resp := Error{Message: str, Data: data}

	bits, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(os.Stderr, jsonError(str, err))
		return werr
	}

	_, err = fmt.Fprintln(os.Stderr, string(bits))
	return err
}

// WriteLine writes obj as a single compact JSON line to w. Used for
// JSON-lines output modes where each record stands alone.
func WriteLine(w io.Writer, obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	_, err = fmt.Fprintln(w, string(bits))
	return err
}

// Write marshals obj with indentation to stdout.
func Write(obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(os.Stderr, jsonError("error marshaling in iojson.Write", err))
		return werr
	}

	_, err = fmt.Fprintln(os.Stdout, string(bits))
	return err
}
