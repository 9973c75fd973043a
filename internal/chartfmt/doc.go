// Package chartfmt renders a resolved stitch grid.
//
// Pretty draws the chart the way it is knitted: the last written row at the
// top, the first at the bottom, odd-numbered rows read right to left and
// even-numbered rows left to right. The row number sits on the side the row
// starts from. JSON and Plain are machine-friendly forms in pattern order.
package chartfmt
