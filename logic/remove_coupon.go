package logic

func reduceRemoveCoupon(p Pricing, c Cart) Cart {
	c = recalculate(p, c, c.Lines, 0)
	c.CouponCode = nil
	return c
}
