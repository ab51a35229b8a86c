package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// Validate checks the configuration for structural errors.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		criterio.Run("prefix", c.Prefix, Prefix),
		criterio.Run("start_index", c.StartIndex, startIndex),
		c.validateExtensions(),
		c.validateExclude(),
	)
}

// Prefix validates a rename prefix: non-empty after trimming and free
// of path separators so target names stay inside the directory.
func Prefix(prefix string) error {
	if strings.TrimSpace(prefix) == "" {
		return fmt.Errorf("prefix is required")
	}
	if strings.ContainsAny(prefix, `/\`) {
		return fmt.Errorf("prefix must not contain path separators")
	}
	return nil
}

func startIndex(n int) error {
	if n < 0 {
		return fmt.Errorf("must be >= 0")
	}
	return nil
}

func (c *Config) validateExtensions() error {
	if len(c.Extensions) == 0 {
		return criterio.NewFieldErrors("extensions", fmt.Errorf("at least one extension is required"))
	}

	var errs criterio.FieldErrorsBuilder
	for i, ext := range c.Extensions {
		field := fmt.Sprintf("extensions[%d]", i)
		if !strings.HasPrefix(ext, ".") {
			errs = errs.Append(field, fmt.Errorf("extension %q must start with a dot", ext))
			continue
		}
		if ext != strings.ToLower(ext) {
			errs = errs.Append(field, fmt.Errorf("extension %q must be lowercase", ext))
		}
	}
	return errs.ToError()
}

func (c *Config) validateExclude() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("exclude[%d]", i), fmt.Errorf("invalid glob pattern %q", pattern))
		}
	}
	return errs.ToError()
}
