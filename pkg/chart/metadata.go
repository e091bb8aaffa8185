package chart

import (
	"slices"
	"strings"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/table"
)

// Trigrams maps year → category → short codes of the items behind a segment.
// Only the last year's entries are displayed, inside callout boxes.
type Trigrams map[string]map[string][]string

// Lookup returns the trigram list for a year and category, or nil.
func (tg Trigrams) Lookup(year, category string) []string {
	if tg == nil {
		return nil
	}
	return tg[year][category]
}

// Metadata carries the presentation fields that accompany a metric table.
type Metadata struct {
	Title    string   `json:"title" toml:"title"`
	YLabel   string   `json:"y_label" toml:"y_label"`
	Trigrams Trigrams `json:"trigrams,omitempty" toml:"trigrams"`
}

// Validate checks that the metadata can title a chart. File names are
// checked at export time.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Title) == "" {
		return qerrors.New(qerrors.ErrCodeInvalidMetadata, "metadata must contain a non-empty title")
	}
	if strings.TrimSpace(m.YLabel) == "" {
		return qerrors.New(qerrors.ErrCodeInvalidMetadata, "metadata must contain a non-empty y-axis label")
	}
	for year, byCat := range m.Trigrams {
		for cat, codes := range byCat {
			for _, c := range codes {
				if strings.TrimSpace(c) == "" {
					return qerrors.New(qerrors.ErrCodeInvalidMetadata, "empty trigram for %s/%s", year, cat)
				}
			}
		}
	}
	return nil
}

// ValidateAgainst checks that every trigram entry refers to a year and a
// category present in t.
func (m Metadata) ValidateAgainst(t *table.Table) error {
	years := make([]string, 0, len(m.Trigrams))
	for y := range m.Trigrams {
		years = append(years, y)
	}
	slices.Sort(years)

	for _, y := range years {
		if _, ok := t.YearIndex(y); !ok {
			return qerrors.New(qerrors.ErrCodeInvalidMetadata, "trigrams reference unknown year %q", y)
		}
		for cat := range m.Trigrams[y] {
			if !t.HasCategory(cat) {
				return qerrors.New(qerrors.ErrCodeInvalidMetadata, "trigrams reference unknown category %q in year %q", cat, y)
			}
		}
	}
	return nil
}
