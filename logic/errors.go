package logic

import (
	"errors"
	"fmt"
)

type StatusCode int

const (
	StatusInvalidArgument StatusCode = iota
	StatusFailedPrecondition
)

// Error message constants for the cart domain.
const (
	ErrMsgSessionRequired    = "Session ID is required"
	ErrMsgMenuItemRequired   = "Menu item ID is required"
	ErrMsgMenuItemUnknown    = "Menu item not found"
	ErrMsgMenuItemUnavail    = "Menu item is not available"
	ErrMsgAddonUnknown       = "Add-on not offered for this item"
	ErrMsgLineIDRequired     = "Line ID is required"
	ErrMsgQuantityPositive   = "Quantity must be positive"
	ErrMsgInvalidPortion     = "Portion must be half or full"
	ErrMsgInvalidSpice       = "Spice level must be mild, medium or hot"
	ErrMsgCouponCodeRequired = "Coupon code is required"
	ErrMsgCouponUnknown      = "Coupon code not recognised"
	ErrMsgCouponMinSubtotal  = "Cart subtotal is below the coupon minimum"
	ErrMsgCartEmpty          = "Cart is empty"
	ErrMsgPercentageRange    = "Percentage must be 0-100"
	ErrMsgFixedDiscountNeg   = "Fixed discount cannot be negative"
	ErrMsgInvalidCouponType  = "Invalid coupon type"
)

// ErrNoStore is raised when cart state is read from a context that was
// never given a Store. It always indicates a wiring defect.
var ErrNoStore = errors.New("cart: no store attached to context")

var statusNames = [...]string{
	StatusInvalidArgument:    "INVALID_ARGUMENT",
	StatusFailedPrecondition: "FAILED_PRECONDITION",
}

func (s StatusCode) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "UNKNOWN"
	}
	return statusNames[s]
}

// CommandError is returned when a request is rejected before it reaches
// the store. The store itself never fails.
type CommandError struct {
	Code    StatusCode
	Message string
}

func (e *CommandError) Error() string {
	return e.Message
}

// StatusOf reports the status code carried by err or anything it wraps.
func StatusOf(err error) (StatusCode, bool) {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) && cmdErr != nil {
		return cmdErr.Code, true
	}
	return 0, false
}

func NewInvalidArgument(message string) *CommandError {
	return &CommandError{Code: StatusInvalidArgument, Message: message}
}

func NewInvalidArgumentf(format string, args ...interface{}) *CommandError {
	return NewInvalidArgument(fmt.Sprintf(format, args...))
}

func NewFailedPrecondition(message string) *CommandError {
	return &CommandError{Code: StatusFailedPrecondition, Message: message}
}

func NewFailedPreconditionf(format string, args ...interface{}) *CommandError {
	return NewFailedPrecondition(fmt.Sprintf(format, args...))
}
