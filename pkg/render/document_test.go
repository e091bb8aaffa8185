package render

import (
	"path/filepath"
	"testing"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
	"github.com/desvart/qsnap/pkg/chart/radar"
	qerrors "github.com/desvart/qsnap/pkg/errors"
)

func barDocument() Document {
	style := chart.DefaultStyle()
	l := bar.Layout{
		Title:  "Coverage",
		YLabel: "Share",
		Years:  []string{"2024"},
		Segments: []bar.Segment{
			{Category: "Good", Year: "2024", Left: -0.4, Right: 0.4, Top: 1, Label: "100% (3)", Color: "#86EFAC"},
		},
		Style: style,
	}
	return NewBarDocument(l, DefaultImage())
}

func TestDocumentRoundTrip(t *testing.T) {
	doc := barDocument()
	doc.RunID = "run-1"
	doc.Style.FontSize = 16

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("MarshalDocument: %v", err)
	}
	got, err := UnmarshalDocument(data)
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}

	if got.Kind != KindBar || got.RunID != "run-1" {
		t.Errorf("header = %q/%q", got.Kind, got.RunID)
	}
	if got.Bar == nil || got.Bar.Title != "Coverage" || len(got.Bar.Segments) != 1 {
		t.Fatalf("Bar = %+v", got.Bar)
	}
	if got.Bar.Style.FontSize != 16 {
		t.Errorf("layout style font = %v, want the document style", got.Bar.Style.FontSize)
	}
	if got.Title() != "Coverage" {
		t.Errorf("Title() = %q", got.Title())
	}
}

func TestUnmarshalDocumentDefaultsImage(t *testing.T) {
	got, err := UnmarshalDocument([]byte(`{"kind":"flow","dot":"digraph G {}"}`))
	if err != nil {
		t.Fatalf("UnmarshalDocument: %v", err)
	}
	if got.Image != DefaultImage() {
		t.Errorf("Image = %+v, want defaults", got.Image)
	}
	if got.Title() != KindFlow {
		t.Errorf("Title() = %q", got.Title())
	}
}

func TestUnmarshalDocumentErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `{`},
		{"unknown kind", `{"kind":"pie"}`},
		{"bar without segments", `{"kind":"bar","bar":{"title":"x"}}`},
		{"radar without axes", `{"kind":"radar"}`},
		{"flow without dot", `{"kind":"flow"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDocument([]byte(tt.data))
			if !qerrors.Is(err, qerrors.ErrCodeInvalidInput) {
				t.Errorf("err = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestDocumentFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.json")
	l := radar.Layout{
		Title:      "Maturity",
		Categories: []string{"A", "B", "C"},
		Axes:       []radar.Axis{{Category: "A"}, {Category: "B"}, {Category: "C"}},
		RadialMax:  1,
		Style:      chart.DefaultStyle(),
	}
	if err := WriteDocumentFile(NewRadarDocument(l, DefaultImage()), path); err != nil {
		t.Fatalf("WriteDocumentFile: %v", err)
	}
	got, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile: %v", err)
	}
	if got.Radar == nil || len(got.Radar.Axes) != 3 {
		t.Errorf("Radar = %+v", got.Radar)
	}

	if _, err := ReadDocumentFile(filepath.Join(t.TempDir(), "missing.json")); !qerrors.Is(err, qerrors.ErrCodeFileNotFound) {
		t.Errorf("missing file: err = %v", err)
	}
}
