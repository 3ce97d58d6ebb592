package logic

import "strings"

type PortionSize string

const (
	PortionHalf PortionSize = "half"
	PortionFull PortionSize = "full"
)

type SpiceLevel string

const (
	SpiceMild   SpiceLevel = "mild"
	SpiceMedium SpiceLevel = "medium"
	SpiceHot    SpiceLevel = "hot"
)

type DietaryType string

const (
	DietaryVeg    DietaryType = "veg"
	DietaryNonVeg DietaryType = "nonveg"
)

// ParsePortionSize accepts "half" or "full" in any case.
func ParsePortionSize(s string) (PortionSize, error) {
	switch p := PortionSize(strings.ToLower(strings.TrimSpace(s))); p {
	case PortionHalf, PortionFull:
		return p, nil
	}
	return "", NewInvalidArgumentf("%s: %q", ErrMsgInvalidPortion, s)
}

// ParseSpiceLevel accepts "mild", "medium" or "hot" in any case.
func ParseSpiceLevel(s string) (SpiceLevel, error) {
	switch l := SpiceLevel(strings.ToLower(strings.TrimSpace(s))); l {
	case SpiceMild, SpiceMedium, SpiceHot:
		return l, nil
	}
	return "", NewInvalidArgumentf("%s: %q", ErrMsgInvalidSpice, s)
}

func (p PortionSize) Valid() bool {
	return p == PortionHalf || p == PortionFull
}

func (l SpiceLevel) Valid() bool {
	return l == SpiceMild || l == SpiceMedium || l == SpiceHot
}

// Translation is a dish's name and description in another language.
type Translation struct {
	Name        string
	Description string
}

type Addon struct {
	ID    string
	Name  string
	Price int64
}

// MenuItem is a catalog entry. Carts hold value copies, so later catalog
// edits never reach lines already in a cart.
type MenuItem struct {
	ID              string
	Name            string
	Description     string
	Category        string
	DietaryType     DietaryType
	Price           int64
	HalfPrice       *int64 // nil when the dish has no half portion
	SpiceLevel      SpiceLevel
	Addons          []Addon
	IsAvailable     bool
	IsBestSeller    bool
	Customizable    bool
	PreparationTime int // minutes
	Allergens       []string
	Translations    map[string]Translation // keyed by language code, e.g. "hi", "ml"
}

// HasHalfPortion reports whether a half portion is priced for this dish.
func (m MenuItem) HasHalfPortion() bool {
	return m.HalfPrice != nil
}

// NeedsCustomization reports whether the menu should ask for options
// before adding the dish rather than adding it straight away.
func (m MenuItem) NeedsCustomization() bool {
	return m.Customizable || len(m.Addons) > 0 || m.HasHalfPortion()
}

// Localized returns the name and description in lang, falling back to
// the default text for any part that has no translation.
func (m MenuItem) Localized(lang string) Translation {
	out := Translation{Name: m.Name, Description: m.Description}
	if t, ok := m.Translations[lang]; ok {
		if t.Name != "" {
			out.Name = t.Name
		}
		if t.Description != "" {
			out.Description = t.Description
		}
	}
	return out
}

// Addon looks up one of the item's add-ons by id.
func (m MenuItem) Addon(id string) (Addon, bool) {
	for _, a := range m.Addons {
		if a.ID == id {
			return a, true
		}
	}
	return Addon{}, false
}

// Clone returns a deep copy of m.
func (m MenuItem) Clone() MenuItem {
	c := m
	if m.HalfPrice != nil {
		hp := *m.HalfPrice
		c.HalfPrice = &hp
	}
	c.Addons = cloneAddons(m.Addons)
	if m.Allergens != nil {
		c.Allergens = make([]string, len(m.Allergens))
		copy(c.Allergens, m.Allergens)
	}
	if m.Translations != nil {
		c.Translations = make(map[string]Translation, len(m.Translations))
		for lang, t := range m.Translations {
			c.Translations[lang] = t
		}
	}
	return c
}

func cloneAddons(addons []Addon) []Addon {
	if addons == nil {
		return nil
	}
	out := make([]Addon, len(addons))
	copy(out, addons)
	return out
}
