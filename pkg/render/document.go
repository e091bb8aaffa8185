package render

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/bar"
	"github.com/desvart/qsnap/pkg/chart/radar"
	qerrors "github.com/desvart/qsnap/pkg/errors"
)

// Chart kinds carried by a [Document].
const (
	KindBar   = "bar"
	KindRadar = "radar"
	KindFlow  = "flow"
)

// =============================================================================
// Document - Layout Interchange Format
// =============================================================================

// Document is the JSON form of a computed chart. It is a discriminated union:
// Kind selects which of Bar, Radar or DOT is populated.
//
//	Bar ("bar"):     Bar holds the stacked bar layout
//	Radar ("radar"): Radar holds the spider chart layout
//	Flow ("flow"):   DOT holds the Graphviz source of the flow diagram
//
// Image and Style travel with the layout so a document can be rendered again
// to any format without the source table.
type Document struct {
	Kind  string      `json:"kind"`
	RunID string      `json:"run_id,omitempty"`
	Image Image       `json:"image"`
	Style chart.Style `json:"style"`

	Bar   *bar.Layout   `json:"bar,omitempty"`
	Radar *radar.Layout `json:"radar,omitempty"`
	DOT   string        `json:"dot,omitempty"`
}

// NewBarDocument wraps a bar layout.
func NewBarDocument(l bar.Layout, img Image) Document {
	return Document{Kind: KindBar, Image: img, Style: l.Style, Bar: &l}
}

// NewRadarDocument wraps a radar layout.
func NewRadarDocument(l radar.Layout, img Image) Document {
	return Document{Kind: KindRadar, Image: img, Style: l.Style, Radar: &l}
}

// NewFlowDocument wraps a flow diagram's DOT source.
func NewFlowDocument(dot string, img Image, style chart.Style) Document {
	return Document{Kind: KindFlow, Image: img, Style: style, DOT: dot}
}

// Title returns the chart title, or the kind for flow diagrams.
func (d Document) Title() string {
	switch {
	case d.Bar != nil:
		return d.Bar.Title
	case d.Radar != nil:
		return d.Radar.Title
	}
	return d.Kind
}

// Validate checks that the payload matching Kind is present.
func (d Document) Validate() error {
	switch d.Kind {
	case KindBar:
		if d.Bar == nil || len(d.Bar.Segments) == 0 {
			return qerrors.New(qerrors.ErrCodeInvalidInput, "bar document must contain segments")
		}
	case KindRadar:
		if d.Radar == nil || len(d.Radar.Axes) == 0 {
			return qerrors.New(qerrors.ErrCodeInvalidInput, "radar document must contain axes")
		}
	case KindFlow:
		if d.DOT == "" {
			return qerrors.New(qerrors.ErrCodeInvalidInput, "flow document must contain a DOT string")
		}
	default:
		return qerrors.New(qerrors.ErrCodeInvalidInput, "unknown document kind %q", d.Kind)
	}
	return nil
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalDocument serializes a document to indented JSON.
func MarshalDocument(d Document) ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// UnmarshalDocument parses and validates a document. The document style is
// copied back into the layout, and a missing image size takes the defaults.
func UnmarshalDocument(data []byte) (Document, error) {
	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return Document{}, qerrors.Wrap(qerrors.ErrCodeInvalidInput, err, "unmarshal document")
	}
	if err := d.Validate(); err != nil {
		return Document{}, err
	}
	d.Image = d.Image.WithDefaults()
	if d.Bar != nil {
		d.Bar.Style = d.Style
	}
	if d.Radar != nil {
		d.Radar.Style = d.Style
	}
	return d, nil
}

// WriteDocumentFile writes a document to a JSON file.
func WriteDocumentFile(d Document, path string) error {
	data, err := MarshalDocument(d)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadDocumentFile reads a document from a JSON file.
func ReadDocumentFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Document{}, qerrors.Wrap(qerrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalDocument(data)
}
