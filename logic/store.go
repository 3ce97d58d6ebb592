package logic

import (
	"go.uber.org/zap"
)

// Snapshot is a point-in-time copy of the cart handed to readers.
type Snapshot struct {
	Cart      Cart
	ItemCount int
	Action    ActionKind // zero for plain reads
}

// Listener observes every transition. It receives its own copy of the
// cart and must not call back into the store's mutators.
type Listener func(Snapshot)

type listenerEntry struct {
	id int
	fn Listener
}

// Store owns one cart. It is not safe for concurrent use: callers that
// share a store between goroutines serialise access themselves.
type Store struct {
	pricing   Pricing
	ids       LineIDSource
	logger    *zap.Logger
	cart      Cart
	listeners []listenerEntry
	nextID    int
}

// NewStore creates a store holding the empty cart.
//
// Example:
//
//	store := logic.NewStore(logic.DefaultPricing()).
//	    WithLogger(logger).
//	    WithLineIDs(&logic.SequentialLineIDs{})
func NewStore(pricing Pricing) *Store {
	return &Store{
		pricing: pricing,
		ids:     RandomLineIDs{},
		logger:  zap.NewNop(),
		cart:    EmptyCart(),
	}
}

func (s *Store) WithLogger(logger *zap.Logger) *Store {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *Store) WithLineIDs(ids LineIDSource) *Store {
	if ids != nil {
		s.ids = ids
	}
	return s
}

// Pricing returns the constants the store prices with.
func (s *Store) Pricing() Pricing {
	return s.pricing
}

// Dispatch applies one action and notifies listeners. AddLine actions
// without a LineID, or with one already in the cart, get a fresh one.
func (s *Store) Dispatch(a Action) Snapshot {
	_, snap := s.apply(a)
	return snap
}

// apply is Dispatch that also returns the action as reduced.
func (s *Store) apply(a Action) (Action, Snapshot) {
	if a == nil {
		return nil, s.Snapshot()
	}
	if add, ok := a.(AddLine); ok {
		a = s.prepareAddLine(add)
	}

	s.cart = Reduce(s.pricing, s.cart, a)

	s.logger.Debug("cart updated",
		zap.Stringer("action", a.Kind()),
		zap.Int("lines", len(s.cart.Lines)),
		zap.Int("item_count", s.cart.ItemCount()),
		zap.Int64("subtotal", s.cart.Subtotal),
		zap.Int64("total", s.cart.Total),
	)

	s.notify(a.Kind())
	return a, s.snapshot(a.Kind())
}

func (s *Store) prepareAddLine(a AddLine) AddLine {
	if !a.MenuItem.IsAvailable {
		s.logger.Warn("ignoring unavailable menu item", zap.String("menu_item_id", a.MenuItem.ID))
		return a
	}
	if a.Quantity < 1 {
		s.logger.Warn("clamping quantity", zap.String("menu_item_id", a.MenuItem.ID), zap.Int("quantity", a.Quantity))
	}
	if a.LineID == "" {
		a.LineID = s.nextLineID(a.MenuItem.ID)
	} else if s.cart.indexOf(a.LineID) >= 0 {
		s.logger.Warn("replacing duplicate line id", zap.String("line_id", a.LineID))
		a.LineID = s.nextLineID(a.MenuItem.ID)
	}
	return a
}

// maxLineIDAttempts bounds how often a source may repeat an id in use
// before the store falls back to random ids.
const maxLineIDAttempts = 8

func (s *Store) nextLineID(menuItemID string) string {
	for i := 0; i < maxLineIDAttempts; i++ {
		if id := s.ids.NextLineID(menuItemID); id != "" && s.cart.indexOf(id) < 0 {
			return id
		}
	}
	s.logger.Warn("line id source keeps repeating, using random ids", zap.String("menu_item_id", menuItemID))
	for {
		if id := (RandomLineIDs{}).NextLineID(menuItemID); s.cart.indexOf(id) < 0 {
			return id
		}
	}
}

// AddLine appends a new line and returns its id. ok is false when the
// item is unavailable and nothing was added.
func (s *Store) AddLine(item MenuItem, quantity int, portion PortionSize, spice SpiceLevel, addons []Addon, instructions *string) (lineID string, ok bool) {
	applied, _ := s.apply(AddLine{
		MenuItem:     item,
		Quantity:     quantity,
		PortionSize:  portion,
		SpiceLevel:   spice,
		Addons:       addons,
		Instructions: instructions,
	})
	if !item.IsAvailable {
		return "", false
	}
	return applied.(AddLine).LineID, true
}

// QuickAdd adds one full portion at the dish's default spice level.
// Dishes that need options first are refused.
func (s *Store) QuickAdd(item MenuItem) (lineID string, ok bool) {
	if item.NeedsCustomization() {
		return "", false
	}
	return s.AddLine(item, 1, PortionFull, item.SpiceLevel, nil, nil)
}

func (s *Store) RemoveLine(lineID string) {
	s.Dispatch(RemoveLine{LineID: lineID})
}

func (s *Store) UpdateQuantity(lineID string, quantity int) {
	s.Dispatch(UpdateQuantity{LineID: lineID, Quantity: quantity})
}

func (s *Store) ClearCart() {
	s.Dispatch(ClearCart{})
}

func (s *Store) ApplyCoupon(code string, discount int64) {
	s.Dispatch(ApplyCoupon{Code: code, Discount: discount})
}

func (s *Store) RemoveCoupon() {
	s.Dispatch(RemoveCoupon{})
}

// Cart returns a copy of the current cart.
func (s *Store) Cart() Cart {
	return s.cart.Clone()
}

func (s *Store) ItemCount() int {
	return s.cart.ItemCount()
}

func (s *Store) Snapshot() Snapshot {
	return s.snapshot(0)
}

func (s *Store) snapshot(kind ActionKind) Snapshot {
	return Snapshot{
		Cart:      s.cart.Clone(),
		ItemCount: s.cart.ItemCount(),
		Action:    kind,
	}
}

// Subscribe registers l for change notifications. The returned func
// removes it and may be called more than once.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	if l == nil {
		return func() {}
	}
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: l})

	return func() {
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(kind ActionKind) {
	if len(s.listeners) == 0 {
		return
	}
	listeners := make([]listenerEntry, len(s.listeners))
	copy(listeners, s.listeners)
	for _, e := range listeners {
		e.fn(s.snapshot(kind))
	}
}
