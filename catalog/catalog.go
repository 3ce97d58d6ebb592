// Package catalog loads the restaurant's menu and coupon file.
//
// The file is YAML:
//
//	items:
//	  - id: dal-makhani
//	    name: Dal Makhani
//	    category: mains
//	    dietary_type: veg
//	    price: 150
//	    half_price: 80
//	    spice_level: mild
//	    available: true
//	    addons:
//	      - {id: butter, name: Extra Butter, price: 20}
//	coupons:
//	  - {code: SAVE50, type: fixed, value: 50}
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/coupon"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

type addonRecord struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Price int64  `yaml:"price"`
}

type translationRecord struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type itemRecord struct {
	ID              string        `yaml:"id"`
	Name            string        `yaml:"name"`
	Description     string        `yaml:"description"`
	Category        string        `yaml:"category"`
	DietaryType     string        `yaml:"dietary_type"`
	Price           int64         `yaml:"price"`
	HalfPrice       *int64        `yaml:"half_price"`
	SpiceLevel      string        `yaml:"spice_level"`
	Available       *bool         `yaml:"available"`
	BestSeller      bool          `yaml:"best_seller"`
	Customizable    bool          `yaml:"customizable"`
	PreparationTime int           `yaml:"preparation_time"`
	Addons          []addonRecord `yaml:"addons"`
	Allergens       []string      `yaml:"allergens"`

	Translations map[string]translationRecord `yaml:"translations"`
}

type file struct {
	Items   []itemRecord  `yaml:"items"`
	Coupons []coupon.Rule `yaml:"coupons"`
}

// Catalog is a read-only view of the menu.
type Catalog struct {
	items   map[string]logic.MenuItem
	order   []string
	coupons []coupon.Rule
}

// Load reads and validates the catalog at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog document. Unknown keys are rejected.
func Parse(r io.Reader) (*Catalog, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		items:   make(map[string]logic.MenuItem, len(f.Items)),
		coupons: f.Coupons,
	}
	for i, rec := range f.Items {
		item, err := rec.toMenuItem()
		if err != nil {
			return nil, fmt.Errorf("items[%d]: %w", i, err)
		}
		if _, dup := c.items[item.ID]; dup {
			return nil, fmt.Errorf("items[%d]: duplicate menu item id %q", i, item.ID)
		}
		c.items[item.ID] = item
		c.order = append(c.order, item.ID)
	}
	return c, nil
}

func (rec itemRecord) toMenuItem() (logic.MenuItem, error) {
	if rec.ID == "" {
		return logic.MenuItem{}, errors.New("id is required")
	}
	if rec.Price < 0 {
		return logic.MenuItem{}, fmt.Errorf("%s: price cannot be negative", rec.ID)
	}
	if rec.HalfPrice != nil && *rec.HalfPrice < 0 {
		return logic.MenuItem{}, fmt.Errorf("%s: half_price cannot be negative", rec.ID)
	}

	spice := logic.SpiceMild
	if rec.SpiceLevel != "" {
		s, err := logic.ParseSpiceLevel(rec.SpiceLevel)
		if err != nil {
			return logic.MenuItem{}, fmt.Errorf("%s: %w", rec.ID, err)
		}
		spice = s
	}

	dietary := logic.DietaryType(rec.DietaryType)
	switch dietary {
	case "", logic.DietaryVeg, logic.DietaryNonVeg:
	default:
		return logic.MenuItem{}, fmt.Errorf("%s: unknown dietary_type %q", rec.ID, rec.DietaryType)
	}

	available := true
	if rec.Available != nil {
		available = *rec.Available
	}

	item := logic.MenuItem{
		ID:              rec.ID,
		Name:            rec.Name,
		Description:     rec.Description,
		Category:        rec.Category,
		DietaryType:     dietary,
		Price:           rec.Price,
		HalfPrice:       rec.HalfPrice,
		SpiceLevel:      spice,
		IsAvailable:     available,
		IsBestSeller:    rec.BestSeller,
		Customizable:    rec.Customizable,
		PreparationTime: rec.PreparationTime,
	}

	for _, a := range rec.Allergens {
		if a == "" {
			return logic.MenuItem{}, fmt.Errorf("%s: allergen cannot be blank", rec.ID)
		}
		item.Allergens = append(item.Allergens, a)
	}
	for lang, t := range rec.Translations {
		if lang == "" {
			return logic.MenuItem{}, fmt.Errorf("%s: translation language is required", rec.ID)
		}
		if item.Translations == nil {
			item.Translations = make(map[string]logic.Translation, len(rec.Translations))
		}
		item.Translations[lang] = logic.Translation{Name: t.Name, Description: t.Description}
	}

	seen := make(map[string]bool, len(rec.Addons))
	for _, a := range rec.Addons {
		switch {
		case a.ID == "":
			return logic.MenuItem{}, fmt.Errorf("%s: add-on id is required", rec.ID)
		case seen[a.ID]:
			return logic.MenuItem{}, fmt.Errorf("%s: duplicate add-on %q", rec.ID, a.ID)
		case a.Price < 0:
			return logic.MenuItem{}, fmt.Errorf("%s: add-on %q price cannot be negative", rec.ID, a.ID)
		}
		seen[a.ID] = true
		item.Addons = append(item.Addons, logic.Addon{ID: a.ID, Name: a.Name, Price: a.Price})
	}
	return item, nil
}

// Lookup returns a copy of the menu item with the given id.
func (c *Catalog) Lookup(id string) (logic.MenuItem, bool) {
	item, ok := c.items[id]
	if !ok {
		return logic.MenuItem{}, false
	}
	return item.Clone(), true
}

// Items lists the menu in file order.
func (c *Catalog) Items() []logic.MenuItem {
	out := make([]logic.MenuItem, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id].Clone())
	}
	return out
}

// Coupons returns the coupon rules declared alongside the menu.
func (c *Catalog) Coupons() []coupon.Rule {
	out := make([]coupon.Rule, len(c.coupons))
	copy(out, c.coupons)
	return out
}

func (c *Catalog) Len() int {
	return len(c.order)
}
