package logic

// reduceRemoveLine drops the line with the given id. An unknown id
// returns c untouched.
func reduceRemoveLine(p Pricing, c Cart, lineID string) Cart {
	idx := c.indexOf(lineID)
	if idx < 0 {
		return c
	}

	var lines []CartLine
	if len(c.Lines) > 1 {
		lines = make([]CartLine, 0, len(c.Lines)-1)
		lines = append(lines, c.Lines[:idx]...)
		lines = append(lines, c.Lines[idx+1:]...)
	}

	return recalculate(p, c, lines, c.Discount)
}
