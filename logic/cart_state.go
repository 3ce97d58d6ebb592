package logic

// CartLine is one configured selection. The same dish configured twice
// yields two lines.
type CartLine struct {
	ID                  string
	MenuItem            MenuItem
	Quantity            int
	PortionSize         PortionSize
	SpiceLevel          SpiceLevel
	SelectedAddons      []Addon
	SpecialInstructions *string
	ItemTotal           int64 // always LineTotal of the fields above
}

// Cart holds lines in insertion order plus aggregates derived from them.
type Cart struct {
	Lines       []CartLine
	Subtotal    int64
	Taxes       int64 // informational; prices are tax-inclusive
	DeliveryFee int64
	Discount    int64
	Total       int64
	CouponCode  *string // set iff a coupon is applied
}

// EmptyCart returns the canonical empty cart.
func EmptyCart() Cart {
	return Cart{}
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// ItemCount is the sum of quantities across lines.
func (c Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// Line returns the line with the given id.
func (c Cart) Line(id string) (CartLine, bool) {
	for _, l := range c.Lines {
		if l.ID == id {
			return l.clone(), true
		}
	}
	return CartLine{}, false
}

func (c Cart) indexOf(id string) int {
	for i, l := range c.Lines {
		if l.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy that shares no memory with c.
func (c Cart) Clone() Cart {
	out := c
	if c.Lines != nil {
		out.Lines = make([]CartLine, len(c.Lines))
		for i, l := range c.Lines {
			out.Lines[i] = l.clone()
		}
	}
	out.CouponCode = cloneString(c.CouponCode)
	return out
}

func (l CartLine) clone() CartLine {
	c := l
	c.MenuItem = l.MenuItem.Clone()
	c.SelectedAddons = cloneAddons(l.SelectedAddons)
	c.SpecialInstructions = cloneString(l.SpecialInstructions)
	return c
}

func (c Cart) withTotals(t Totals) Cart {
	c.Subtotal = t.Subtotal
	c.Taxes = t.Taxes
	c.DeliveryFee = t.DeliveryFee
	c.Discount = t.Discount
	c.Total = t.Total
	return c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
