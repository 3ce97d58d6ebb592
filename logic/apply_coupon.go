package logic

import "strings"

// reduceApplyCoupon replaces any active coupon. The amount is trusted as
// already validated; only a negative amount is clamped. A blank code
// removes the active coupon instead.
func reduceApplyCoupon(p Pricing, c Cart, a ApplyCoupon) Cart {
	code := strings.TrimSpace(a.Code)
	if code == "" {
		return reduceRemoveCoupon(p, c)
	}

	discount := a.Discount
	if discount < 0 {
		discount = 0
	}

	c = recalculate(p, c, c.Lines, discount)
	c.CouponCode = &code
	return c
}
