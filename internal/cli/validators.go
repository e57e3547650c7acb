package cli

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ValidateFilePath validates that a file path exists and is a file
func ValidateFilePath(path string) error {
	if !filepath.IsAbs(path) {
		path, _ = filepath.Abs(path)
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("path does not exist: %s", path)
		}
		return fmt.Errorf("error accessing path: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, expected file: %s", path)
	}

	return nil
}

// ValidateImagePath checks that path is an existing file with an allowed
// extension. An empty allowed list accepts any extension.
func ValidateImagePath(path string, allowed []string) error {
	if err := ValidateFilePath(path); err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(path))
	if len(allowed) > 0 && !slices.Contains(allowed, ext) {
		return fmt.Errorf("unsupported image type %q (must be one of: %s)", ext, strings.Join(allowed, ", "))
	}
	return nil
}

// ValidateEndpoint checks that the creation endpoint is an absolute http(s) URL
func ValidateEndpoint(raw string) error {
	if raw == "" {
		return fmt.Errorf("endpoint cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid endpoint %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid endpoint %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: missing host", raw)
	}
	return nil
}

// ValidateOutputFormat validates the output format flag
func ValidateOutputFormat(format string) error {
	validFormats := []string{"text", "json", "yaml"}
	if slices.Contains(validFormats, format) {
		return nil
	}
	return fmt.Errorf("invalid output format: %s (must be: text, json, or yaml)", format)
}

// ValidateLimit validates a list limit flag
func ValidateLimit(n int) error {
	if n < 0 {
		return fmt.Errorf("limit cannot be negative: %d", n)
	}
	return nil
}
