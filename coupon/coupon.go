// Package coupon turns a customer-entered code into a validated discount
// amount. The cart store trusts whatever amount it is given, so every
// magnitude check lives here.
package coupon

import (
	"strings"

	"github.com/tXHsesaMSeckjpitHoikGaqDGnfiuvnslva/rayan-eats/logic"
)

type Kind string

const (
	KindPercentage Kind = "percentage"
	KindFixed      Kind = "fixed"
)

// Rule describes one redeemable code.
type Rule struct {
	Code        string `yaml:"code"`
	Kind        Kind   `yaml:"type"`
	Value       int64  `yaml:"value"`
	MinSubtotal int64  `yaml:"min_subtotal"`
}

func (r Rule) Validate() error {
	if strings.TrimSpace(r.Code) == "" {
		return logic.NewInvalidArgument(logic.ErrMsgCouponCodeRequired)
	}
	switch r.Kind {
	case KindPercentage:
		if r.Value < 0 || r.Value > 100 {
			return logic.NewInvalidArgument(logic.ErrMsgPercentageRange)
		}
	case KindFixed:
		if err := logic.RequireNonNegative(r.Value, logic.ErrMsgFixedDiscountNeg); err != nil {
			return err
		}
	default:
		return logic.NewInvalidArgumentf("%s: %q", logic.ErrMsgInvalidCouponType, r.Kind)
	}
	if r.MinSubtotal < 0 {
		return logic.NewInvalidArgument("Minimum subtotal cannot be negative")
	}
	return nil
}

// Discount is the amount the rule takes off subtotal at redemption time.
// A fixed discount is capped at that subtotal. The cart keeps the amount
// as given and never re-runs the rule, so later edits to the cart can
// leave the discount above the new subtotal.
func (r Rule) Discount(subtotal int64) int64 {
	switch r.Kind {
	case KindPercentage:
		return subtotal * r.Value / 100
	case KindFixed:
		if r.Value > subtotal {
			return subtotal
		}
		return r.Value
	default:
		return 0
	}
}

// Book is the set of codes a restaurant currently honours.
type Book struct {
	rules map[string]Rule
}

func normalise(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// NewBook validates rules and indexes them by code, ignoring case.
func NewBook(rules []Rule) (*Book, error) {
	b := &Book{rules: make(map[string]Rule, len(rules))}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		key := normalise(r.Code)
		if _, dup := b.rules[key]; dup {
			return nil, logic.NewInvalidArgumentf("duplicate coupon code %q", r.Code)
		}
		r.Code = key
		b.rules[key] = r
	}
	return b, nil
}

// Redeem returns the canonical code and the discount for cart as it is
// now. min_subtotal is only checked here.
func (b *Book) Redeem(code string, cart logic.Cart) (string, int64, error) {
	key := normalise(code)
	if err := logic.RequireNonEmpty(key, logic.ErrMsgCouponCodeRequired); err != nil {
		return "", 0, err
	}
	rule, ok := b.rules[key]
	if !ok {
		return "", 0, logic.NewInvalidArgumentf("%s: %s", logic.ErrMsgCouponUnknown, key)
	}
	if err := logic.RequireNotEmpty(cart); err != nil {
		return "", 0, err
	}
	if cart.Subtotal < rule.MinSubtotal {
		return "", 0, logic.NewFailedPreconditionf("%s (%d)", logic.ErrMsgCouponMinSubtotal, rule.MinSubtotal)
	}
	return rule.Code, rule.Discount(cart.Subtotal), nil
}

func (b *Book) Len() int {
	return len(b.rules)
}
