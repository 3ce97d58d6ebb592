package main

import (
	"math"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/catalog"
	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

// addLineRequest is a decoded AddLine call, already resolved against the
// catalog.
type addLineRequest struct {
	item         logic.MenuItem
	quantity     int
	portion      logic.PortionSize
	spice        logic.SpiceLevel
	addons       []logic.Addon
	instructions *string
}

func decodeAddLine(cat *catalog.Catalog, req *structpb.Struct) (addLineRequest, error) {
	itemID := stringField(req, "menu_item_id")
	if err := logic.RequireNonEmpty(itemID, logic.ErrMsgMenuItemRequired); err != nil {
		return addLineRequest{}, err
	}
	item, ok := cat.Lookup(itemID)
	if !ok {
		return addLineRequest{}, logic.NewInvalidArgumentf("%s: %s", logic.ErrMsgMenuItemUnknown, itemID)
	}
	if err := logic.RequireAvailable(item); err != nil {
		return addLineRequest{}, err
	}

	out := addLineRequest{
		item:     item,
		quantity: 1,
		portion:  logic.PortionFull,
		spice:    item.SpiceLevel,
	}

	quantity, present, err := intField(req, "quantity")
	if err != nil {
		return addLineRequest{}, err
	}
	if present {
		if err := logic.RequirePositive(quantity, logic.ErrMsgQuantityPositive); err != nil {
			return addLineRequest{}, err
		}
		out.quantity = quantity
	}

	if v := stringField(req, "portion"); v != "" {
		if out.portion, err = logic.ParsePortionSize(v); err != nil {
			return addLineRequest{}, err
		}
	}
	if v := stringField(req, "spice"); v != "" {
		if out.spice, err = logic.ParseSpiceLevel(v); err != nil {
			return addLineRequest{}, err
		}
	}

	addonIDs, err := stringListField(req, "addon_ids")
	if err != nil {
		return addLineRequest{}, err
	}
	for _, id := range addonIDs {
		addon, ok := item.Addon(id)
		if !ok {
			return addLineRequest{}, logic.NewInvalidArgumentf("%s: %s", logic.ErrMsgAddonUnknown, id)
		}
		out.addons = append(out.addons, addon)
	}

	if v := stringField(req, "instructions"); v != "" {
		out.instructions = &v
	}
	return out, nil
}

func decodeLineID(req *structpb.Struct) (string, error) {
	id := stringField(req, "line_id")
	if err := logic.RequireNonEmpty(id, logic.ErrMsgLineIDRequired); err != nil {
		return "", err
	}
	return id, nil
}

// decodeQuantityUpdate allows zero and negative quantities; the store
// treats them as removal.
func decodeQuantityUpdate(req *structpb.Struct) (string, int, error) {
	id, err := decodeLineID(req)
	if err != nil {
		return "", 0, err
	}
	quantity, present, err := intField(req, "quantity")
	if err != nil {
		return "", 0, err
	}
	if !present {
		return "", 0, logic.NewInvalidArgument("Quantity is required")
	}
	return id, quantity, nil
}

func stringField(req *structpb.Struct, key string) string {
	return req.GetFields()[key].GetStringValue()
}

func intField(req *structpb.Struct, key string) (int, bool, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, true, logic.NewInvalidArgumentf("%s must be a number", key)
	}
	f := n.NumberValue
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, true, logic.NewInvalidArgumentf("%s must be a whole number", key)
	}
	return int(f), true, nil
}

func stringListField(req *structpb.Struct, key string) ([]string, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return nil, nil
	}
	list, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		return nil, logic.NewInvalidArgumentf("%s must be a list", key)
	}
	out := make([]string, 0, len(list.ListValue.GetValues()))
	for _, item := range list.ListValue.GetValues() {
		s, ok := item.GetKind().(*structpb.Value_StringValue)
		if !ok {
			return nil, logic.NewInvalidArgumentf("%s must contain strings", key)
		}
		out = append(out, s.StringValue)
	}
	return out, nil
}
