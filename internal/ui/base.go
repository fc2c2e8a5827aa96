package ui

// Base holds the size a parent gave a component. Embed it to get SetSize
// and the dimension accessors.
type Base struct {
	width, height int
}

func (b *Base) SetSize(width, height int) {
	b.width, b.height = width, height
}

func (b Base) Width() int  { return b.width }
func (b Base) Height() int { return b.height }

// ListHeight is the number of rows left once overhead rows are taken.
func (b Base) ListHeight(overhead int) int {
	return max(b.height-overhead, 0)
}
