package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds category names, year labels and chart titles.
const maxNameLength = 256

// ValidateLabel validates a category or year label.
// Labels end up in file names, SVG attributes and Graphviz identifiers, so
// the rules reject anything that could break those encodings:
//   - No empty labels
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateLabel(kind, label string) error {
	if strings.TrimSpace(label) == "" {
		return New(ErrCodeInvalidSchema, "%s label cannot be empty", kind)
	}

	if len(label) > maxNameLength {
		return New(ErrCodeInvalidSchema, "%s label too long (max %d characters)", kind, maxNameLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSchema, "%s label %q contains invalid control characters", kind, label)
		}
	}

	return nil
}

// ValidateBaseName validates an export base name before sanitization.
// It must be a simple name: path components are chosen by the output
// directory, not by the chart title.
func ValidateBaseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidPath, "file name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidPath, "file name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "file name contains invalid characters")
		}
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidPath, "file name cannot contain path separators")
	}

	if strings.Contains(name, "..") {
		return New(ErrCodeInvalidPath, "file name cannot contain path traversal sequences (..)")
	}

	return nil
}
