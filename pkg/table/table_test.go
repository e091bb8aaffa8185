package table

import (
	"encoding/json"
	"math"
	"slices"
	"testing"

	qerrors "github.com/desvart/qsnap/pkg/errors"
)

func sample(t *testing.T) *Table {
	t.Helper()
	tbl, err := New([]string{"2022", "2023", "2024"},
		Row{Category: Good, Values: []float64{12, 22, 34}},
		Row{Category: Average, Values: []float64{12, 18, 12}},
		Row{Category: Bad, Values: []float64{2, 9, 5}},
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tbl
}

func TestNew(t *testing.T) {
	tbl := sample(t)

	if got := tbl.Categories(); !slices.Equal(got, []string{Good, Average, Bad}) {
		t.Errorf("Categories() = %v", got)
	}
	if got := tbl.Years(); !slices.Equal(got, []string{"2022", "2023", "2024"}) {
		t.Errorf("Years() = %v", got)
	}
	if tbl.NumCategories() != 3 || tbl.NumYears() != 3 {
		t.Errorf("shape = %dx%d, want 3x3", tbl.NumCategories(), tbl.NumYears())
	}
	if got := tbl.LastYear(); got != "2024" {
		t.Errorf("LastYear() = %q, want 2024", got)
	}
	if v, ok := tbl.Value(Average, "2023"); !ok || v != 18 {
		t.Errorf("Value(Average, 2023) = %v, %v", v, ok)
	}
	if _, ok := tbl.Value(Unknown, "2023"); ok {
		t.Error("Value(Unknown) found, want missing")
	}
	if !tbl.HasCategory(Bad) || tbl.HasCategory(Full) {
		t.Error("HasCategory mismatch")
	}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name  string
		years []string
		rows  []Row
	}{
		{"no years", nil, []Row{{Category: Good}}},
		{"no rows", []string{"2022"}, nil},
		{"empty category", []string{"2022"}, []Row{{Category: "", Values: []float64{1}}}},
		{"duplicate category", []string{"2022"}, []Row{
			{Category: Good, Values: []float64{1}},
			{Category: Good, Values: []float64{2}},
		}},
		{"duplicate year", []string{"2022", "2022"}, []Row{{Category: Good, Values: []float64{1, 2}}}},
		{"ragged", []string{"2022", "2023"}, []Row{{Category: Good, Values: []float64{1}}}},
		{"negative", []string{"2022"}, []Row{{Category: Good, Values: []float64{-1}}}},
		{"nan", []string{"2022"}, []Row{{Category: Good, Values: []float64{math.NaN()}}}},
		{"inf", []string{"2022"}, []Row{{Category: Good, Values: []float64{math.Inf(1)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.years, tt.rows...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !qerrors.Is(err, qerrors.ErrCodeInvalidSchema) {
				t.Errorf("code = %v, want %v", qerrors.GetCode(err), qerrors.ErrCodeInvalidSchema)
			}
		})
	}
}

func TestFromColumns(t *testing.T) {
	tbl, err := FromColumns([]string{Good, Bad},
		Column{Year: "2022", Values: []float64{12, 2}},
		Column{Year: "2023", Values: []float64{22, 9}},
	)
	if err != nil {
		t.Fatalf("FromColumns: %v", err)
	}
	row, _ := tbl.Row(Bad)
	if !slices.Equal(row, []float64{2, 9}) {
		t.Errorf("Row(Bad) = %v, want [2 9]", row)
	}

	_, err = FromColumns([]string{Good, Bad}, Column{Year: "2022", Values: []float64{1}})
	if !qerrors.Is(err, qerrors.ErrCodeInvalidSchema) {
		t.Errorf("short column: err = %v, want INVALID_SCHEMA", err)
	}
}

func TestTotals(t *testing.T) {
	tbl := sample(t)
	if got := tbl.Totals(); !slices.Equal(got, []float64{26, 49, 51}) {
		t.Errorf("Totals() = %v, want [26 49 51]", got)
	}
	if got, ok := tbl.Total("2022"); !ok || got != 26 {
		t.Errorf("Total(2022) = %v, %v", got, ok)
	}
	if _, ok := tbl.Total("1999"); ok {
		t.Error("Total(1999) found, want missing")
	}
}

func TestNormalize(t *testing.T) {
	tbl := sample(t)
	rel, err := tbl.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	col, _ := rel.Column("2022")
	want := []float64{0.4615, 0.4615, 0.0769}
	if !slices.Equal(col, want) {
		t.Errorf("Column(2022) = %v, want %v", col, want)
	}

	for j, y := range rel.Years() {
		var sum float64
		for _, v := range rel.ColumnAt(j) {
			if v < 0 || v > 1 {
				t.Errorf("year %s: value %v out of [0,1]", y, v)
			}
			sum += v
		}
		if math.Abs(sum-1) > 1e-3 {
			t.Errorf("year %s: sum = %v, want ~1", y, sum)
		}
	}

	// Source is untouched.
	if v, _ := tbl.Value(Good, "2022"); v != 12 {
		t.Errorf("source mutated: Good/2022 = %v", v)
	}
}

func TestNormalizeZeroValueKept(t *testing.T) {
	tbl, _ := New([]string{"2024"},
		Row{Category: Good, Values: []float64{3}},
		Row{Category: Unknown, Values: []float64{0}},
	)
	rel, err := tbl.Normalize()
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !rel.HasCategory(Unknown) {
		t.Fatal("zero-valued category dropped")
	}
	if v, _ := rel.Value(Unknown, "2024"); v != 0 {
		t.Errorf("Unknown = %v, want 0", v)
	}
}

func TestNormalizeEmptyYear(t *testing.T) {
	tbl, _ := New([]string{"2023", "2024"},
		Row{Category: Good, Values: []float64{3, 0}},
		Row{Category: Bad, Values: []float64{1, 0}},
	)
	_, err := tbl.Normalize()
	if !qerrors.Is(err, qerrors.ErrCodeEmptyYear) {
		t.Fatalf("err = %v, want EMPTY_YEAR", err)
	}
}

func TestTail(t *testing.T) {
	tbl := sample(t)

	same, err := tbl.Tail(0)
	if err != nil || same != tbl {
		t.Errorf("Tail(0) = %v, %v; want same table", same, err)
	}

	tail, err := tbl.Tail(2)
	if err != nil {
		t.Fatalf("Tail(2): %v", err)
	}
	if got := tail.Years(); !slices.Equal(got, []string{"2024"}) {
		t.Errorf("Years() = %v, want [2024]", got)
	}

	if _, err := tbl.Tail(3); !qerrors.Is(err, qerrors.ErrCodeInvalidInput) {
		t.Errorf("Tail(3) err = %v, want INVALID_INPUT", err)
	}
}

func TestJSONKeepsOrder(t *testing.T) {
	tbl := sample(t)
	data, err := json.Marshal(tbl)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var back Table
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !slices.Equal(back.Categories(), tbl.Categories()) {
		t.Errorf("categories = %v", back.Categories())
	}
	if v, _ := back.Value(Bad, "2023"); v != 9 {
		t.Errorf("Bad/2023 = %v, want 9", v)
	}

	if err := json.Unmarshal([]byte(`{"categories":["Good"],"years":["2022"],"values":[[-1]]}`), &back); err == nil {
		t.Error("negative value accepted")
	}
}
