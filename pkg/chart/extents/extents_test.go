package extents

import (
	"math"
	"slices"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/desvart/qsnap/pkg/table"
)

func TestExtentHeight(t *testing.T) {
	tests := []struct {
		name   string
		extent Extent
		want   float64
	}{
		{"positive", Extent{Bottom: 12, Top: 24}, 12},
		{"zero height", Extent{Bottom: 26, Top: 26}, 0},
		{"from origin", Extent{Bottom: 0, Top: 1}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.extent.Height(); got != tt.want {
				t.Errorf("Height() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtentMid(t *testing.T) {
	tests := []struct {
		name   string
		extent Extent
		want   float64
	}{
		{"symmetric", Extent{Bottom: 0, Top: 1}, 0.5},
		{"offset", Extent{Bottom: 36, Top: 39}, 37.5},
		{"zero height", Extent{Bottom: 26, Top: 26}, 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.extent.Mid(); got != tt.want {
				t.Errorf("Mid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStack(t *testing.T) {
	got := Stack([]float64{12, 12, 2, 10, 3})
	want := []Extent{
		{Bottom: 0, Top: 12},
		{Bottom: 12, Top: 24},
		{Bottom: 24, Top: 26},
		{Bottom: 26, Top: 36},
		{Bottom: 36, Top: 39},
	}
	if !slices.Equal(got, want) {
		t.Errorf("Stack() = %v, want %v", got, want)
	}
}

func TestStackZeroValueKept(t *testing.T) {
	got := Stack([]float64{0.5, 0, 0.5})
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	if got[1].Height() != 0 || got[1].Bottom != 0.5 {
		t.Errorf("zero segment = %+v, want [0.5, 0.5]", got[1])
	}
}

func TestStackEmpty(t *testing.T) {
	if got := Stack(nil); got != nil {
		t.Errorf("Stack(nil) = %v, want nil", got)
	}
}

func TestComputeInvariants(t *testing.T) {
	abs, err := table.New([]string{"2022", "2023", "2024"},
		table.Row{Category: table.Full, Values: []float64{3, 7, 12}},
		table.Row{Category: table.Good, Values: []float64{12, 22, 12}},
		table.Row{Category: table.Low, Values: []float64{0, 4, 2}},
		table.Row{Category: table.None, Values: []float64{9, 5, 10}},
		table.Row{Category: table.Unknown, Values: []float64{2, 0, 3}},
	)
	if err != nil {
		t.Fatal(err)
	}
	rel, err := abs.Normalize()
	if err != nil {
		t.Fatal(err)
	}

	for _, tbl := range []*table.Table{abs, rel} {
		x := Compute(tbl)
		for j, year := range x.Years {
			spans, ok := x.Year(year)
			if !ok {
				t.Fatalf("Year(%s) missing", year)
			}
			col := tbl.ColumnAt(j)
			if spans[0].Bottom != 0 {
				t.Errorf("%s: first bottom = %v, want 0", year, spans[0].Bottom)
			}
			for i := range spans {
				if spans[i].Height() < 0 {
					t.Errorf("%s/%s: negative height", year, x.Categories[i])
				}
				if i > 0 && spans[i].Bottom != spans[i-1].Top {
					t.Errorf("%s: gap between %s and %s", year, x.Categories[i-1], x.Categories[i])
				}
				if math.Abs(spans[i].Height()-col[i]) > 1e-12 {
					t.Errorf("%s/%s: height %v, want %v", year, x.Categories[i], spans[i].Height(), col[i])
				}
			}
			if last := spans[len(spans)-1].Top; math.Abs(last-floats.Sum(col)) > 1e-12 {
				t.Errorf("%s: last top = %v, want total %v", year, last, floats.Sum(col))
			}
		}
	}
}

func TestExtentsLookup(t *testing.T) {
	tbl, _ := table.New([]string{"2023", "2024"},
		table.Row{Category: table.Good, Values: []float64{1, 2}},
		table.Row{Category: table.Bad, Values: []float64{3, 4}},
	)
	x := Compute(tbl)

	if e, ok := x.At("2023", table.Bad); !ok || e != (Extent{Bottom: 1, Top: 4}) {
		t.Errorf("At(2023, Bad) = %v, %v", e, ok)
	}
	if e, ok := x.Last(table.Bad); !ok || e != (Extent{Bottom: 2, Top: 6}) {
		t.Errorf("Last(Bad) = %v, %v", e, ok)
	}
	if _, ok := x.At("2024", table.Unknown); ok {
		t.Error("At(Unknown) found")
	}
	if _, ok := (Extents{}).Last(table.Good); ok {
		t.Error("Last on empty extents found")
	}
}
