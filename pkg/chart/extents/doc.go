// Package extents computes where each category's segment sits inside a
// stacked bar.
//
// For one year the values are accumulated in stacking order:
//
//	bottom[0] = 0
//	top[i]    = bottom[i] + value[i]
//	bottom[i] = top[i-1]
//
// so adjacent segments share their boundary exactly and the last top equals
// the year total. Years are independent of each other. The bar layout reads
// segment rectangles, inter-year connectors and callout anchors from these
// extents.
package extents
