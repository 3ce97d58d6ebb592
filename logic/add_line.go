package logic

import "strings"

// reduceAddLine appends a line. An unavailable item, a missing id or an
// id already in the cart leaves c unchanged.
func reduceAddLine(p Pricing, c Cart, a AddLine) Cart {
	if !a.MenuItem.IsAvailable || a.LineID == "" || c.indexOf(a.LineID) >= 0 {
		return c
	}

	lines := make([]CartLine, 0, len(c.Lines)+1)
	lines = append(lines, c.Lines...)
	lines = append(lines, newLine(a))

	return recalculate(p, c, lines, c.Discount)
}

func newLine(a AddLine) CartLine {
	item := a.MenuItem.Clone()

	quantity := a.Quantity
	if quantity < 1 {
		quantity = 1
	}
	portion := a.PortionSize
	if !portion.Valid() {
		portion = PortionFull
	}
	spice := a.SpiceLevel
	if !spice.Valid() {
		spice = item.SpiceLevel
	}
	if !spice.Valid() {
		spice = SpiceMild
	}
	addons := dedupeAddons(a.Addons)

	return CartLine{
		ID:                  a.LineID,
		MenuItem:            item,
		Quantity:            quantity,
		PortionSize:         portion,
		SpiceLevel:          spice,
		SelectedAddons:      addons,
		SpecialInstructions: normaliseInstructions(a.Instructions),
		ItemTotal:           LineTotal(item, portion, addons, quantity),
	}
}

// dedupeAddons keeps the first occurrence of each add-on id.
func dedupeAddons(addons []Addon) []Addon {
	if len(addons) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(addons))
	out := make([]Addon, 0, len(addons))
	for _, a := range addons {
		if _, ok := seen[a.ID]; ok {
			continue
		}
		seen[a.ID] = struct{}{}
		out = append(out, a)
	}
	return out
}

func normaliseInstructions(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
