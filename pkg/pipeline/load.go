package pipeline

import (
	"path/filepath"
	"strings"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	qio "github.com/desvart/qsnap/pkg/io"
)

// Source locates the input of a run.
type Source struct {
	// Path is a dataset JSON document or an .xlsx workbook.
	Path string
	// Sheet selects the workbook sheet; empty means the first one.
	Sheet string
	// MetadataPath is a TOML metadata file. It is required for workbooks and
	// replaces the embedded metadata of a JSON dataset.
	MetadataPath string
}

// IsWorkbook reports whether the source is a spreadsheet.
func (s Source) IsWorkbook() bool {
	return strings.EqualFold(filepath.Ext(s.Path), ".xlsx")
}

// Load reads the dataset a source points at.
func Load(src Source) (qio.Dataset, error) {
	if src.Path == "" {
		return qio.Dataset{}, qerrors.New(qerrors.ErrCodeInvalidInput, "input path is required")
	}

	var ds qio.Dataset
	switch ext := strings.ToLower(filepath.Ext(src.Path)); ext {
	case ".json":
		d, err := qio.ImportDataset(src.Path)
		if err != nil {
			return qio.Dataset{}, err
		}
		ds = d
	case ".xlsx":
		if src.MetadataPath == "" {
			return qio.Dataset{}, qerrors.New(qerrors.ErrCodeInvalidInput, "workbook input needs a metadata file")
		}
		t, err := qio.ReadWorkbook(src.Path, src.Sheet)
		if err != nil {
			return qio.Dataset{}, err
		}
		ds.Table = t
	default:
		return qio.Dataset{}, qerrors.New(qerrors.ErrCodeInvalidFormat, "unsupported input %q (want .json or .xlsx)", ext)
	}

	if src.MetadataPath != "" {
		m, err := qio.ImportMetadata(src.MetadataPath)
		if err != nil {
			return qio.Dataset{}, err
		}
		ds.Metadata = m
	}
	return ds, nil
}
