package worldgeom

// BuildCellGeometry runs both sweep passes of spec.md §4.2 over one
// cell's tile grid and returns its five-bucket segment partition, ready
// for cross-cell merging.
func BuildCellGeometry(c *Cell) Bucket {
	var b Bucket
	for row := int64(0); row <= c.Dims.CellHeight; row++ {
		segs := sweepHorizontal(c, row)
		switch row {
		case 0:
			b.Top = append(b.Top, segs...)
		case c.Dims.CellHeight:
			b.Bottom = append(b.Bottom, segs...)
		default:
			b.Middle = append(b.Middle, segs...)
		}
	}
	for col := int64(0); col <= c.Dims.CellWidth; col++ {
		segs := sweepVertical(c, col)
		switch col {
		case 0:
			b.Left = append(b.Left, segs...)
		case c.Dims.CellWidth:
			b.Right = append(b.Right, segs...)
		default:
			b.Middle = append(b.Middle, segs...)
		}
	}
	b.Middle = append(b.Middle, traceSlopedEdges(c)...)
	return b
}
