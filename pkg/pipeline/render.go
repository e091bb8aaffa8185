package pipeline

import (
	"context"
	"errors"
	"fmt"

	qerrors "github.com/desvart/qsnap/pkg/errors"
	"github.com/desvart/qsnap/pkg/observability"
	"github.com/desvart/qsnap/pkg/render"
	"github.com/desvart/qsnap/pkg/render/flow"
	"github.com/desvart/qsnap/pkg/render/raster"
	"github.com/desvart/qsnap/pkg/render/sink"
)

var errSkipFormat = errors.New("format not supported")

// Render produces the requested formats from a document. The document's
// image size and style are used as stored.
func Render(ctx context.Context, doc render.Document, formats []string) (map[string][]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	if err := ValidateFormats(doc.Kind, formats); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := renderFormat(ctx, doc, format)
		if errors.Is(err, errSkipFormat) {
			return nil, qerrors.New(qerrors.ErrCodeUnsupported, "%s charts cannot be rendered as %s", doc.Kind, format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
		observability.Pipeline().OnArtifact(ctx, doc.RunID, format, len(data))
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, doc render.Document, format string) ([]byte, error) {
	if format == FormatJSON {
		return render.MarshalDocument(doc)
	}
	switch doc.Kind {
	case KindBar:
		return renderBar(doc, format)
	case KindRadar:
		return renderRadar(doc, format)
	case KindFlow:
		return renderFlow(ctx, doc, format)
	}
	return nil, errSkipFormat
}

func renderBar(doc render.Document, format string) ([]byte, error) {
	if format == FormatSVG {
		return sink.RenderBarSVG(*doc.Bar, sink.WithImage(doc.Image)), nil
	}
	fig, err := raster.Bar(*doc.Bar, doc.Image)
	if err != nil {
		return nil, err
	}
	return rasterize(fig, doc.Image, format)
}

func renderRadar(doc render.Document, format string) ([]byte, error) {
	if format == FormatSVG {
		return sink.RenderRadarSVG(*doc.Radar, sink.WithImage(doc.Image)), nil
	}
	fig, err := raster.Radar(*doc.Radar)
	if err != nil {
		return nil, err
	}
	return rasterize(fig, doc.Image, format)
}

func rasterize(fig raster.Figure, img render.Image, format string) ([]byte, error) {
	switch format {
	case FormatPNG:
		return raster.PNG(fig, img)
	case FormatPDF:
		return raster.PDF(fig, img)
	}
	return nil, errSkipFormat
}

func renderFlow(ctx context.Context, doc render.Document, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return flow.RenderSVG(ctx, doc.DOT)
	case FormatPNG:
		return flow.RenderPNG(ctx, doc.DOT, doc.Image.Scale)
	case FormatDOT:
		return []byte(doc.DOT), nil
	}
	return nil, errSkipFormat
}
