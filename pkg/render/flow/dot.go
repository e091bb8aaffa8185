package flow

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/desvart/qsnap/pkg/chart"
	"github.com/desvart/qsnap/pkg/chart/labels"
	"github.com/desvart/qsnap/pkg/render"
)

const (
	minBoxHeight = 0.3
	maxBoxHeight = 2.0
	minPenWidth  = 1.0
	maxPenWidth  = 12.0
)

// Options configures the flow diagram.
type Options struct {
	// Title is printed above the diagram.
	Title string
	// Detailed adds the "<pct>% (<count>)" label under each category name.
	Detailed bool
}

// ToDOT converts reconciled labels to Graphviz DOT. Years run left to right;
// within a year, categories keep their stacking order from top to bottom.
// Categories at 0% in a year are drawn at the minimum height with no band
// leading into them.
func ToDOT(lt labels.Table, style chart.Style, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  ranksep=1.2;\n")
	buf.WriteString("  nodesep=0.15;\n")
	fmt.Fprintf(&buf, "  node [shape=box, style=\"filled\", color=%q, penwidth=%s, fontname=\"Helvetica\", fontsize=%s];\n",
		style.BarBorderColor, ftoa(style.BarBorderWidth), ftoa(style.LabelFontSize))
	buf.WriteString("  edge [arrowhead=none];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  labelloc=t;\n  label=%q;\n  fontname=\"Helvetica-Bold\";\n  fontsize=%s;\n",
			opts.Title, ftoa(style.TitleFontSize))
	}
	buf.WriteString("\n")

	for j, year := range lt.Years {
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+year)
		fmt.Fprintf(&buf, "    label=%q;\n    style=invis;\n", year)
		for i, cat := range lt.Categories {
			pct := lt.Percent[i][j]
			label := cat
			if opts.Detailed {
				label += "\n" + lt.Text[i][j]
			}
			fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=%q, height=%s];\n",
				nodeID(year, cat), label, style.Color(cat), ftoa(boxHeight(pct)))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for j := 0; j+1 < len(lt.Years); j++ {
		from, to := lt.Years[j], lt.Years[j+1]
		for i, cat := range lt.Categories {
			pct := lt.Percent[i][j+1]
			attrs := []string{fmt.Sprintf("color=%q", style.Color(cat))}
			if pct > 0 {
				attrs = append(attrs, "penwidth="+ftoa(penWidth(pct)))
			} else {
				attrs = append(attrs, "style=invis")
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", nodeID(from, cat), nodeID(to, cat), strings.Join(attrs, ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(year, category string) string { return year + "/" + category }

func boxHeight(pct int) float64 {
	return minBoxHeight + (maxBoxHeight-minBoxHeight)*float64(pct)/labels.Hundred
}

func penWidth(pct int) float64 {
	return minPenWidth + (maxPenWidth-minPenWidth)*float64(pct)/labels.Hundred
}

func ftoa(f float64) string { return strconv.FormatFloat(f, 'g', 4, 64) }

// RenderSVG lays out a DOT graph with Graphviz and returns SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := renderDOT(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG lays out a DOT graph with Graphviz and rasterizes it. A scale of
// 2 doubles the pixel density.
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = render.DefaultScale
	}
	return renderDOT(ctx, withDPI(dot, render.BaseDPI*scale), graphviz.PNG)
}

func renderDOT(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// withDPI sets the graph resolution right after the opening brace.
func withDPI(dot string, dpi float64) string {
	return strings.Replace(dot, "{", fmt.Sprintf("{\n  dpi=%s;", ftoa(dpi)), 1)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one whose
// viewBox starts at the origin and whose size matches the viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
