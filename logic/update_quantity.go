package logic

// reduceUpdateQuantity sets a line's quantity. Zero or below removes the
// line; there is no upper bound.
func reduceUpdateQuantity(p Pricing, c Cart, a UpdateQuantity) Cart {
	if a.Quantity <= 0 {
		return reduceRemoveLine(p, c, a.LineID)
	}

	idx := c.indexOf(a.LineID)
	if idx < 0 {
		return c
	}

	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)

	line := lines[idx]
	line.Quantity = a.Quantity
	line.ItemTotal = LineTotal(line.MenuItem, line.PortionSize, line.SelectedAddons, line.Quantity)
	lines[idx] = line

	return recalculate(p, c, lines, c.Discount)
}
