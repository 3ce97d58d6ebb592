package main

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

func toStruct(m map[string]interface{}) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to encode response: %v", err)
	}
	return s, nil
}

func snapshotFields(snap logic.Snapshot) map[string]interface{} {
	c := snap.Cart
	lines := make([]interface{}, 0, len(c.Lines))
	for _, l := range c.Lines {
		lines = append(lines, lineFields(l))
	}

	m := map[string]interface{}{
		"lines":        lines,
		"item_count":   snap.ItemCount,
		"subtotal":     c.Subtotal,
		"taxes":        c.Taxes,
		"delivery_fee": c.DeliveryFee,
		"discount":     c.Discount,
		"total":        c.Total,
	}
	if c.CouponCode != nil {
		m["coupon_code"] = *c.CouponCode
	}
	return m
}

func lineFields(l logic.CartLine) map[string]interface{} {
	m := map[string]interface{}{
		"id":           l.ID,
		"menu_item_id": l.MenuItem.ID,
		"name":         l.MenuItem.Name,
		"quantity":     l.Quantity,
		"portion":      string(l.PortionSize),
		"spice":        string(l.SpiceLevel),
		"unit_price":   logic.UnitPrice(l.MenuItem, l.PortionSize),
		"addons":       addonList(l.SelectedAddons),
		"item_total":   l.ItemTotal,
	}
	if l.SpecialInstructions != nil {
		m["instructions"] = *l.SpecialInstructions
	}
	return m
}

func menuItemFields(item logic.MenuItem) map[string]interface{} {
	m := map[string]interface{}{
		"id":               item.ID,
		"name":             item.Name,
		"description":      item.Description,
		"category":         item.Category,
		"dietary_type":     string(item.DietaryType),
		"price":            item.Price,
		"spice_level":      string(item.SpiceLevel),
		"available":        item.IsAvailable,
		"best_seller":      item.IsBestSeller,
		"customizable":     item.Customizable,
		"preparation_time": item.PreparationTime,
		"addons":           addonList(item.Addons),
	}
	if item.HalfPrice != nil {
		m["half_price"] = *item.HalfPrice
	}
	allergens := make([]interface{}, 0, len(item.Allergens))
	for _, a := range item.Allergens {
		allergens = append(allergens, a)
	}
	m["allergens"] = allergens
	if len(item.Translations) > 0 {
		translations := make(map[string]interface{}, len(item.Translations))
		for lang, t := range item.Translations {
			translations[lang] = map[string]interface{}{
				"name":        t.Name,
				"description": t.Description,
			}
		}
		m["translations"] = translations
	}
	return m
}

func addonList(addons []logic.Addon) []interface{} {
	out := make([]interface{}, 0, len(addons))
	for _, a := range addons {
		out = append(out, map[string]interface{}{
			"id":    a.ID,
			"name":  a.Name,
			"price": a.Price,
		})
	}
	return out
}

func cartResponse(snap logic.Snapshot, extra map[string]interface{}) (*structpb.Struct, error) {
	m := map[string]interface{}{"cart": snapshotFields(snap)}
	for k, v := range extra {
		m[k] = v
	}
	return toStruct(m)
}
