package config

import (
	"fmt"
	"strings"
)

// validOutputFormats are the accepted values for the output setting.
var validOutputFormats = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Pattern == "" {
		return fmt.Errorf("pattern must not be empty")
	}
	if strings.ContainsAny(c.Pattern, `/\`) {
		return fmt.Errorf("pattern %q is a file name, not a path", c.Pattern)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	for _, format := range validOutputFormats {
		if c.OutputFormat == format {
			return nil
		}
	}
	return fmt.Errorf("invalid output format %q (valid: %s)", c.OutputFormat, strings.Join(validOutputFormats, ", "))
}
