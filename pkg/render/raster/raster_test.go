package raster

import (
	"bytes"
	"image/png"
	"testing"

	"gonum.org/v1/plot/vg"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
	"github.com/desvart/qsnap/pkg/chart/extents"
	"github.com/desvart/qsnap/pkg/chart/labels"
	"github.com/desvart/qsnap/pkg/chart/radar"
	"github.com/desvart/qsnap/pkg/render"
	"github.com/desvart/qsnap/pkg/table"
)

func barLayout(t *testing.T) bar.Layout {
	t.Helper()
	abs, err := table.New([]string{"2023", "2024"},
		table.Row{Category: table.Good, Values: []float64{12, 34}},
		table.Row{Category: table.None, Values: []float64{4, 5}},
		table.Row{Category: table.Unknown, Values: []float64{3, 1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	rel, err := abs.Normalize()
	if err != nil {
		t.Fatal(err)
	}
	lt, err := labels.Build(abs, rel)
	if err != nil {
		t.Fatal(err)
	}
	l, err := bar.Build(bar.Input{
		Absolute: abs,
		Relative: rel,
		Labels:   lt,
		Extents:  extents.Compute(rel),
		Metadata: chart.Metadata{Title: "Coverage", YLabel: "Share"},
	}, chart.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func radarLayout(t *testing.T) radar.Layout {
	t.Helper()
	scores, err := table.New([]string{"2024"},
		table.Row{Category: "Security", Values: []float64{0.5}},
		table.Row{Category: "Testing", Values: []float64{0.25}},
		table.Row{Category: "Docs", Values: []float64{1}},
	)
	if err != nil {
		t.Fatal(err)
	}
	l, err := radar.Build(scores, chart.Metadata{Title: "Maturity", YLabel: "Score"}, radar.Options{}, chart.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	return l
}

func TestBarPNG(t *testing.T) {
	img := render.Image{Width: 300, Height: 200, Scale: 2}
	fig, err := Bar(barLayout(t), img)
	if err != nil {
		t.Fatalf("Bar: %v", err)
	}
	data, err := PNG(fig, img)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}

	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	b := decoded.Bounds()
	if b.Dx() != 600 || b.Dy() != 400 {
		t.Errorf("PNG size = %dx%d, want 600x400", b.Dx(), b.Dy())
	}
}

func TestBarPDF(t *testing.T) {
	img := render.DefaultImage()
	fig, err := Bar(barLayout(t), img)
	if err != nil {
		t.Fatal(err)
	}
	data, err := PDF(fig, img)
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("PDF header = %q", data[:min(8, len(data))])
	}
}

func TestRadarPDF(t *testing.T) {
	fig, err := Radar(radarLayout(t))
	if err != nil {
		t.Fatalf("Radar: %v", err)
	}
	data, err := PDF(fig, render.DefaultImage())
	if err != nil {
		t.Fatalf("PDF: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("PDF header = %q", data[:min(8, len(data))])
	}
}

func TestRadarPNG(t *testing.T) {
	fig, err := Radar(radarLayout(t))
	if err != nil {
		t.Fatalf("Radar: %v", err)
	}
	img := render.Image{Width: 400, Height: 300, Scale: 1}
	data, err := PNG(fig, img)
	if err != nil {
		t.Fatalf("PNG: %v", err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 400 || cfg.Height != 300 {
		t.Errorf("PNG size = %dx%d, want 400x300", cfg.Width, cfg.Height)
	}
}

func TestPNGRejectsInvalidImage(t *testing.T) {
	fig, err := Radar(radarLayout(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := PNG(fig, render.Image{Width: -1, Height: 10, Scale: 1}); err == nil {
		t.Error("PNG accepted a negative width")
	}
}

func TestFitCallouts(t *testing.T) {
	l := barLayout(t)
	if len(l.Callouts) != 2 {
		t.Fatalf("callouts = %d, want 2", len(l.Callouts))
	}
	got := fitCallouts(l, l.Style, render.DefaultImage())
	if got < l.XMax {
		t.Errorf("fitCallouts = %v, below layout XMax %v", got, l.XMax)
	}

	l.Callouts = nil
	if got := fitCallouts(l, l.Style, render.DefaultImage()); got != l.XMax {
		t.Errorf("no callouts: fitCallouts = %v, want %v", got, l.XMax)
	}
}

func TestArrowHead(t *testing.T) {
	st := chart.DefaultStyle()
	head := vg.Point{X: 10, Y: 10}
	tri := arrowHead(vg.Point{X: 100, Y: 10}, head, st)
	if len(tri) != 3 || tri[0] != head {
		t.Fatalf("arrowHead = %v", tri)
	}
	if tri[1].X <= head.X {
		t.Errorf("base %v not behind the tip", tri[1])
	}
	if arrowHead(head, head, st) != nil {
		t.Error("zero-length arrow has a head")
	}
}
