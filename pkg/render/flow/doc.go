// Package flow renders the category flow diagram: one column of category
// boxes per year, with bands linking each category to itself in the next
// year. Box heights and band widths follow the reconciled percentages, so
// the diagram reads like the stacked bars with the gaps filled in.
//
// The diagram is produced as Graphviz DOT by [ToDOT] and laid out by the
// embedded Graphviz of go-graphviz:
//
//	dot := flow.ToDOT(lt, style, flow.Options{Title: "Coverage", Detailed: true})
//	svg, err := flow.RenderSVG(ctx, dot)
//	png, err := flow.RenderPNG(ctx, dot, 2)
package flow
