package bar_test

import (
	"fmt"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
	"github.com/desvart/qsnap/pkg/chart/extents"
	"github.com/desvart/qsnap/pkg/chart/labels"
	"github.com/desvart/qsnap/pkg/table"
)

func ExampleBuild() {
	abs, _ := table.New([]string{"2023", "2024"},
		table.Row{Category: table.Good, Values: []float64{22, 34}},
		table.Row{Category: table.Bad, Values: []float64{9, 5}},
		table.Row{Category: table.Unknown, Values: []float64{5, 0}},
	)
	rel, _ := abs.Normalize()
	lt, _ := labels.Build(abs, rel)

	l, err := bar.Build(bar.Input{
		Absolute: abs,
		Relative: rel,
		Labels:   lt,
		Extents:  extents.Compute(rel),
		Metadata: chart.Metadata{Title: "Quality Trend", YLabel: "Quality score"},
	}, chart.DefaultStyle())
	if err != nil {
		fmt.Println(err)
		return
	}

	for _, s := range l.SegmentsOf("2024") {
		fmt.Println(s.Category, s.Label)
	}
	for _, c := range l.Callouts {
		fmt.Println("callout:", c.Category)
	}
	// Output:
	// Good 87% (34)
	// Bad 13% (5)
	// Unknown 0% (0)
	// callout: Bad
}
