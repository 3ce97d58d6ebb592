package logic

type ActionKind int

const (
	ActionAddLine ActionKind = iota + 1
	ActionRemoveLine
	ActionUpdateQuantity
	ActionClearCart
	ActionApplyCoupon
	ActionRemoveCoupon
)

func (k ActionKind) String() string {
	switch k {
	case ActionAddLine:
		return "ADD_LINE"
	case ActionRemoveLine:
		return "REMOVE_LINE"
	case ActionUpdateQuantity:
		return "UPDATE_QUANTITY"
	case ActionClearCart:
		return "CLEAR_CART"
	case ActionApplyCoupon:
		return "APPLY_COUPON"
	case ActionRemoveCoupon:
		return "REMOVE_COUPON"
	default:
		return "UNKNOWN"
	}
}

// Action is the closed set of cart transitions accepted by Reduce.
type Action interface {
	Kind() ActionKind
	isAction()
}

// AddLine appends a new line. LineID must be unique within the cart's
// lifetime; Store.Dispatch fills it in when empty.
type AddLine struct {
	LineID       string
	MenuItem     MenuItem
	Quantity     int
	PortionSize  PortionSize
	SpiceLevel   SpiceLevel
	Addons       []Addon
	Instructions *string
}

type RemoveLine struct {
	LineID string
}

type UpdateQuantity struct {
	LineID   string
	Quantity int
}

type ClearCart struct{}

type ApplyCoupon struct {
	Code     string
	Discount int64
}

type RemoveCoupon struct{}

func (AddLine) Kind() ActionKind        { return ActionAddLine }
func (RemoveLine) Kind() ActionKind     { return ActionRemoveLine }
func (UpdateQuantity) Kind() ActionKind { return ActionUpdateQuantity }
func (ClearCart) Kind() ActionKind      { return ActionClearCart }
func (ApplyCoupon) Kind() ActionKind    { return ActionApplyCoupon }
func (RemoveCoupon) Kind() ActionKind   { return ActionRemoveCoupon }

func (AddLine) isAction()        {}
func (RemoveLine) isAction()     {}
func (UpdateQuantity) isAction() {}
func (ClearCart) isAction()      {}
func (ApplyCoupon) isAction()    {}
func (RemoveCoupon) isAction()   {}
