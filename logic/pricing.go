package logic

import "github.com/shopspring/decimal"

const DefaultDeliveryFee int64 = 40

// DefaultTaxRate is the GST share already contained in menu prices.
var DefaultTaxRate = decimal.RequireFromString("0.05")

// Pricing holds the cart-level constants. The zero value is not useful;
// start from DefaultPricing.
type Pricing struct {
	DeliveryFee int64
	TaxRate     decimal.Decimal
}

// Totals are the aggregate figures of a cart.
type Totals struct {
	Subtotal    int64
	Taxes       int64
	DeliveryFee int64
	Discount    int64
	Total       int64
}

func DefaultPricing() Pricing {
	return Pricing{DeliveryFee: DefaultDeliveryFee, TaxRate: DefaultTaxRate}
}

// UnitPrice picks the half price only when half was chosen and the dish
// has one; every other case falls back to the full price.
func UnitPrice(item MenuItem, portion PortionSize) int64 {
	if portion == PortionHalf && item.HalfPrice != nil {
		return *item.HalfPrice
	}
	return item.Price
}

// LineTotal prices one cart line. quantity is not clamped.
func LineTotal(item MenuItem, portion PortionSize, addons []Addon, quantity int) int64 {
	unit := UnitPrice(item, portion)
	for _, a := range addons {
		unit += a.Price
	}
	return unit * int64(quantity)
}

// CartTotals computes aggregates with the default fee and tax rate.
func CartTotals(lines []CartLine, discount int64) Totals {
	return DefaultPricing().CartTotals(lines, discount)
}

// CartTotals derives every aggregate from the lines and discount. Taxes
// are reported but never added to Total, and Total is not clamped at 0.
func (p Pricing) CartTotals(lines []CartLine, discount int64) Totals {
	var subtotal int64
	for _, l := range lines {
		subtotal += l.ItemTotal
	}

	var fee int64
	if len(lines) > 0 {
		fee = p.DeliveryFee
	}

	return Totals{
		Subtotal:    subtotal,
		Taxes:       p.taxOn(subtotal),
		DeliveryFee: fee,
		Discount:    discount,
		Total:       subtotal + fee - discount,
	}
}

func (p Pricing) taxOn(subtotal int64) int64 {
	return decimal.NewFromInt(subtotal).Mul(p.TaxRate).Round(0).IntPart()
}
