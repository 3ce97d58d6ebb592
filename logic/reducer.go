package logic

// Reduce is the cart transition function. It never mutates c and never
// fails: out-of-contract input is normalised rather than rejected.
func Reduce(p Pricing, c Cart, a Action) Cart {
	switch a := a.(type) {
	case AddLine:
		return reduceAddLine(p, c, a)
	case RemoveLine:
		return reduceRemoveLine(p, c, a.LineID)
	case UpdateQuantity:
		return reduceUpdateQuantity(p, c, a)
	case ClearCart:
		return reduceClearCart()
	case ApplyCoupon:
		return reduceApplyCoupon(p, c, a)
	case RemoveCoupon:
		return reduceRemoveCoupon(p, c)
	default:
		return c
	}
}

// Replay folds actions over the empty cart.
func Replay(p Pricing, actions ...Action) Cart {
	c := EmptyCart()
	for _, a := range actions {
		c = Reduce(p, c, a)
	}
	return c
}

// recalculate is the only place aggregates are written, so they always
// move together.
func recalculate(p Pricing, c Cart, lines []CartLine, discount int64) Cart {
	c.Lines = lines
	return c.withTotals(p.CartTotals(lines, discount))
}
