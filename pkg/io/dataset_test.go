package io

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

const sampleDataset = `{
  "data": {
    "Category": ["Good", "Average", "Bad"],
    "2024": [34, 12, 5],
    "2022": [12, 12, 2],
    "2023": [22, 18, 9]
  },
  "metadata": {
    "img_name": "Code Quality",
    "y_label": "Share of projects",
    "trigrams": {"2023": {"Bad": ["ABC", "DEF"]}}
  }
}`

func TestReadDataset(t *testing.T) {
	d, err := ReadDataset(strings.NewReader(sampleDataset))
	if err != nil {
		t.Fatalf("ReadDataset: %v", err)
	}

	if got := d.Table.Years(); !slices.Equal(got, []string{"2024", "2022", "2023"}) {
		t.Errorf("Years() = %v, want document order", got)
	}
	if got := d.Table.Categories(); !slices.Equal(got, []string{table.Good, table.Average, table.Bad}) {
		t.Errorf("Categories() = %v", got)
	}
	if v, _ := d.Table.Value(table.Bad, "2023"); v != 9 {
		t.Errorf("Value(Bad, 2023) = %v, want 9", v)
	}
	if d.Metadata.Title != "Code Quality" {
		t.Errorf("Title = %q, want img_name alias", d.Metadata.Title)
	}
	if got := d.Metadata.Trigrams.Lookup("2023", table.Bad); !slices.Equal(got, []string{"ABC", "DEF"}) {
		t.Errorf("trigrams = %v", got)
	}
}

func TestReadDatasetTitleWins(t *testing.T) {
	doc := `{"data":{"Category":["Good"],"2024":[1]},"metadata":{"title":"A","img_name":"B","y_label":"Y"}}`
	d, err := ReadDataset(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if d.Metadata.Title != "A" {
		t.Errorf("Title = %q, want A", d.Metadata.Title)
	}
}

func TestReadDatasetErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code qerrors.Code
	}{
		{"malformed", `{"data":`, qerrors.ErrCodeInvalidInput},
		{"no data", `{"metadata":{}}`, qerrors.ErrCodeInvalidSchema},
		{"data not object", `{"data":[1,2]}`, qerrors.ErrCodeInvalidSchema},
		{"no category column", `{"data":{"2024":[1]}}`, qerrors.ErrCodeInvalidSchema},
		{"no years", `{"data":{"Category":["Good"]}}`, qerrors.ErrCodeInvalidSchema},
		{"non numeric", `{"data":{"Category":["Good"],"2024":["x"]}}`, qerrors.ErrCodeInvalidSchema},
		{"negative", `{"data":{"Category":["Good"],"2024":[-1]}}`, qerrors.ErrCodeInvalidSchema},
		{"ragged", `{"data":{"Category":["Good","Bad"],"2024":[1]}}`, qerrors.ErrCodeInvalidSchema},
		{"duplicate year", `{"data":{"Category":["Good"],"2024":[1],"2024":[2]}}`, qerrors.ErrCodeInvalidSchema},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDataset(strings.NewReader(tt.doc))
			if !qerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDatasetRoundTrip(t *testing.T) {
	d, err := ReadDataset(strings.NewReader(sampleDataset))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "dataset.json")
	if err := ExportDataset(d, path); err != nil {
		t.Fatalf("ExportDataset: %v", err)
	}
	got, err := ImportDataset(path)
	if err != nil {
		t.Fatalf("ImportDataset: %v", err)
	}

	if !slices.Equal(got.Table.Years(), d.Table.Years()) {
		t.Errorf("Years() = %v, want %v", got.Table.Years(), d.Table.Years())
	}
	for j := range d.Table.NumYears() {
		if !slices.Equal(got.Table.ColumnAt(j), d.Table.ColumnAt(j)) {
			t.Errorf("column %d = %v, want %v", j, got.Table.ColumnAt(j), d.Table.ColumnAt(j))
		}
	}
	if got.Metadata.Title != d.Metadata.Title || got.Metadata.YLabel != d.Metadata.YLabel {
		t.Errorf("Metadata = %+v, want %+v", got.Metadata, d.Metadata)
	}
}

func TestWriteDatasetKeepsCategoryFirst(t *testing.T) {
	tbl, _ := table.New([]string{"2023", "2022"}, table.Row{Category: table.Good, Values: []float64{1, 2}})
	var buf bytes.Buffer
	if err := WriteDataset(Dataset{Table: tbl, Metadata: chart.Metadata{Title: "T", YLabel: "Y"}}, &buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	cat, y23, y22 := strings.Index(out, `"Category"`), strings.Index(out, `"2023"`), strings.Index(out, `"2022"`)
	if !(cat < y23 && y23 < y22) {
		t.Errorf("column order wrong:\n%s", out)
	}

	if err := WriteDataset(Dataset{}, &buf); !qerrors.Is(err, qerrors.ErrCodeSequence) {
		t.Errorf("nil table: err = %v, want SEQUENCE", err)
	}
}

func TestImportDatasetMissing(t *testing.T) {
	_, err := ImportDataset(filepath.Join(t.TempDir(), "nope.json"))
	if !qerrors.Is(err, qerrors.ErrCodeFileNotFound) {
		t.Errorf("err = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadMetadata(t *testing.T) {
	src := `
title = "Code Quality"
y_label = "Share"

[trigrams.2024]
Unknown = ["ABC", "XYZ"]
`
	m, err := ReadMetadata(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ReadMetadata: %v", err)
	}
	if m.Title != "Code Quality" || m.YLabel != "Share" {
		t.Errorf("Metadata = %+v", m)
	}
	if got := m.Trigrams.Lookup("2024", table.Unknown); !slices.Equal(got, []string{"ABC", "XYZ"}) {
		t.Errorf("trigrams = %v", got)
	}

	if _, err := ReadMetadata(strings.NewReader("title = ")); !qerrors.Is(err, qerrors.ErrCodeInvalidMetadata) {
		t.Errorf("bad TOML: err = %v", err)
	}
}
