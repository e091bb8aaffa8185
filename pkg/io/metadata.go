package io

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
)

// ReadMetadata decodes chart metadata from TOML.
func ReadMetadata(r io.Reader) (chart.Metadata, error) {
	var m metadata
	if _, err := toml.NewDecoder(r).Decode(&m); err != nil {
		return chart.Metadata{}, qerrors.Wrap(qerrors.ErrCodeInvalidMetadata, err, "decode metadata")
	}
	return m.toChart(), nil
}

// ImportMetadata reads chart metadata from a TOML file.
func ImportMetadata(path string) (chart.Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return chart.Metadata{}, openError(path, err)
	}
	defer f.Close()
	return ReadMetadata(f)
}
