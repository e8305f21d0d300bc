package loader

import (
	"fmt"
	"path/filepath"
	"strings"
)

var allowedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// ValidateSourceName rejects upload names that are not JSON or YAML documents.
// URLs are not subject to this check.
func ValidateSourceName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty name", ErrUnsupportedSource)
	}
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedSource, name)
	}
	return nil
}

// IsURL reports whether source should be fetched rather than read from disk.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func detectFormat(name string, data []byte) Format {
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		return FormatJSON
	}
	if strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		return FormatJSON
	}
	return FormatYAML
}
