package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// Dataset is a metric table with the metadata that titles its chart.
type Dataset struct {
	Table    *table.Table
	Metadata chart.Metadata
}

type document struct {
	Data     json.RawMessage `json:"data"`
	Metadata metadata        `json:"metadata"`
}

// metadata is the wire form of chart.Metadata shared by JSON and TOML.
type metadata struct {
	Title    string         `json:"title,omitempty" toml:"title"`
	ImgName  string         `json:"img_name,omitempty" toml:"img_name"`
	YLabel   string         `json:"y_label" toml:"y_label"`
	Trigrams chart.Trigrams `json:"trigrams,omitempty" toml:"trigrams"`
}

func (m metadata) toChart() chart.Metadata {
	title := m.Title
	if title == "" {
		title = m.ImgName
	}
	return chart.Metadata{Title: title, YLabel: m.YLabel, Trigrams: m.Trigrams}
}

// ReadDataset decodes a dataset document from r. The table is validated;
// metadata is returned as found and validated later by the pipeline.
func ReadDataset(r io.Reader) (Dataset, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Dataset{}, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "decode dataset")
	}
	if len(doc.Data) == 0 {
		return Dataset{}, qerrors.New(qerrors.ErrCodeInvalidSchema, "dataset has no \"data\" object")
	}
	t, err := decodeColumns(doc.Data)
	if err != nil {
		return Dataset{}, err
	}
	return Dataset{Table: t, Metadata: doc.Metadata.toChart()}, nil
}

// decodeColumns walks the data object token by token so that year columns
// keep their document order.
func decodeColumns(raw json.RawMessage) (*table.Table, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if tok, err := dec.Token(); err != nil || tok != json.Delim('{') {
		return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "\"data\" must be an object of columns")
	}

	var (
		categories []string
		columns    []table.Column
		seen       = map[string]bool{}
	)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, qerrors.Wrap(qerrors.ErrCodeInvalidSchema, err, "read column name")
		}
		key := tok.(string)
		if seen[key] {
			return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "duplicate column %q", key)
		}
		seen[key] = true

		if key == table.CategoryColumn {
			if err := dec.Decode(&categories); err != nil {
				return nil, qerrors.Wrap(qerrors.ErrCodeInvalidSchema, err, "column %q must be a list of names", key)
			}
			continue
		}
		var values []float64
		if err := dec.Decode(&values); err != nil {
			return nil, qerrors.Wrap(qerrors.ErrCodeInvalidSchema, err, "column %q must be a list of numbers", key)
		}
		columns = append(columns, table.Column{Year: key, Values: values})
	}

	if !seen[table.CategoryColumn] {
		return nil, qerrors.New(qerrors.ErrCodeInvalidSchema, "missing %q column", table.CategoryColumn)
	}
	return table.FromColumns(categories, columns...)
}

// ImportDataset reads a dataset document from a file.
func ImportDataset(path string) (Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return Dataset{}, openError(path, err)
	}
	defer f.Close()
	return ReadDataset(f)
}

// WriteDataset encodes d in the dataset document shape, categories first and
// years in table order.
func WriteDataset(d Dataset, w io.Writer) error {
	if d.Table == nil {
		return qerrors.Sequence("dataset export", "SetData")
	}

	var data bytes.Buffer
	data.WriteString("{")
	writeColumn(&data, table.CategoryColumn, d.Table.Categories())
	for j, year := range d.Table.Years() {
		data.WriteString(",")
		writeColumn(&data, year, d.Table.ColumnAt(j))
	}
	data.WriteString("}")

	out := struct {
		Data     json.RawMessage `json:"data"`
		Metadata metadata        `json:"metadata"`
	}{
		Data: data.Bytes(),
		Metadata: metadata{
			Title:    d.Metadata.Title,
			YLabel:   d.Metadata.YLabel,
			Trigrams: d.Metadata.Trigrams,
		},
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func writeColumn(buf *bytes.Buffer, key string, values any) {
	k, _ := json.Marshal(key)
	v, _ := json.Marshal(values)
	buf.Write(k)
	buf.WriteString(":")
	buf.Write(v)
}

// ExportDataset writes a dataset document to a file.
func ExportDataset(d Dataset, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDataset(d, f)
}

func openError(path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return qerrors.Wrap(qerrors.ErrCodeFileNotFound, err, "open %s", path)
	}
	return fmt.Errorf("open %s: %w", path, err)
}
