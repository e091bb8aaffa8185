package radar

import (
	"math"
	"slices"
	"testing"

	"github.com/desvart/qsnap/pkg/chart"
	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

func scores(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]string{"2022", "2023", "2024", "2025"},
		table.Row{Category: "User satisfaction", Values: []float64{0.68, 0.48, 0.18, 0.28}},
		table.Row{Category: "Product stability", Values: []float64{0.48, 0.58, 0.58, 0.68}},
		table.Row{Category: "Fix reactivity", Values: []float64{0.79, 0.89, 0.79, 0.84}},
		table.Row{Category: "Documentation", Values: []float64{0.98, 0.88, 0.78, 0.90}},
	)
	if err != nil {
		t.Fatal(err)
	}
	return tbl
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBuildAxes(t *testing.T) {
	l, err := Build(scores(t), chart.Metadata{Title: "Scores"}, Options{}, chart.DefaultStyle())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	want := []Point{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}
	for k, ax := range l.Axes {
		if !near(ax.End.X, want[k].X) || !near(ax.End.Y, want[k].Y) {
			t.Errorf("axis %d (%s) ends at %v, want %v", k, ax.Category, ax.End, want[k])
		}
	}
	if l.RadialMax != 1 {
		t.Errorf("RadialMax = %v, want 1", l.RadialMax)
	}
}

func TestBuildSeries(t *testing.T) {
	style := chart.DefaultStyle()
	l, err := Build(scores(t), chart.Metadata{Title: "Scores"}, Options{}, style)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Series) != 4 {
		t.Fatalf("len(Series) = %d, want 4", len(l.Series))
	}

	s := l.Series[0]
	if s.Year != "2022" || s.Color != style.SeriesColors[0] {
		t.Errorf("first series = %s %s", s.Year, s.Color)
	}
	// First axis points up: vertex is (0, value).
	if !near(s.Points[0].X, 0) || !near(s.Points[0].Y, 0.68) {
		t.Errorf("vertex 0 = %v, want (0, 0.68)", s.Points[0])
	}
	// Second axis points right.
	if !near(s.Points[1].X, 0.48) || !near(s.Points[1].Y, 0) {
		t.Errorf("vertex 1 = %v, want (0.48, 0)", s.Points[1])
	}
}

func TestBuildSkipYears(t *testing.T) {
	l, err := Build(scores(t), chart.Metadata{Title: "Scores"}, Options{SkipYears: 2}, chart.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	var years []string
	for _, s := range l.Series {
		years = append(years, s.Year)
	}
	if !slices.Equal(years, []string{"2024", "2025"}) {
		t.Errorf("years = %v, want [2024 2025]", years)
	}

	if _, err := Build(scores(t), chart.Metadata{}, Options{SkipYears: 4}, chart.DefaultStyle()); !qerrors.Is(err, qerrors.ErrCodeInvalidInput) {
		t.Errorf("skip all: err = %v", err)
	}
}

func TestBuildRadialMax(t *testing.T) {
	l, err := Build(scores(t), chart.Metadata{}, Options{RadialMax: 2}, chart.DefaultStyle())
	if err != nil {
		t.Fatal(err)
	}
	if p := l.Series[0].Points[0]; !near(p.Y, 0.34) {
		t.Errorf("scaled vertex = %v, want y=0.34", p)
	}
}

func TestBuildErrors(t *testing.T) {
	two, _ := table.New([]string{"2024"},
		table.Row{Category: "A", Values: []float64{0.1}},
		table.Row{Category: "B", Values: []float64{0.2}},
	)
	counts, _ := table.New([]string{"2024"},
		table.Row{Category: "A", Values: []float64{1}},
		table.Row{Category: "B", Values: []float64{12}},
		table.Row{Category: "C", Values: []float64{3}},
	)

	tests := []struct {
		name string
		tbl  *table.Table
		opts Options
		code qerrors.Code
	}{
		{"no data", nil, Options{}, qerrors.ErrCodeSequence},
		{"too few axes", two, Options{}, qerrors.ErrCodeInvalidSchema},
		{"out of range", counts, Options{}, qerrors.ErrCodeInvalidSchema},
		{"negative max", counts, Options{RadialMax: -1}, qerrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.tbl, chart.Metadata{}, tt.opts, chart.DefaultStyle())
			if !qerrors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Build(counts, chart.Metadata{}, Options{RadialMax: 12}, chart.DefaultStyle()); err != nil {
		t.Errorf("RadialMax 12: %v", err)
	}
}
