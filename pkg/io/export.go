package io

import (
	"os"
	"path/filepath"
	"strings"

	qerrors "github.com/desvart/qsnap/pkg/errors"
)

// DefaultExtension is used when a format has no extension of its own.
const DefaultExtension = "png"

// SanitizeBaseName turns a chart title into a file base name: surrounding
// whitespace is trimmed, letters are lowercased and spaces become
// underscores. The name is validated first.
func SanitizeBaseName(name string) (string, error) {
	if err := qerrors.ValidateBaseName(name); err != nil {
		return "", err
	}
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_"), nil
}

// FileName returns the sanitized base name with the extension appended.
func FileName(name, ext string) (string, error) {
	base, err := SanitizeBaseName(name)
	if err != nil {
		return "", err
	}
	if ext = strings.TrimPrefix(ext, "."); ext == "" {
		ext = DefaultExtension
	}
	return base + "." + ext, nil
}

// OutputPath joins dir with the file name of a chart title.
func OutputPath(dir, name, ext string) (string, error) {
	file, err := FileName(name, ext)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, file), nil
}

// WriteFile writes data to path, creating missing parent directories.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return qerrors.Wrap(qerrors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return qerrors.Wrap(qerrors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}
