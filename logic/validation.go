package logic

// RequireNonEmpty checks that a request field was supplied.
func RequireNonEmpty(field, errMsg string) *CommandError {
	if field == "" {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequirePositive checks that a value is greater than zero.
func RequirePositive(value int, errMsg string) *CommandError {
	if value <= 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireNonNegative checks that a value is zero or greater.
func RequireNonNegative(value int64, errMsg string) *CommandError {
	if value < 0 {
		return NewInvalidArgument(errMsg)
	}
	return nil
}

// RequireAvailable rejects dishes the kitchen has switched off.
func RequireAvailable(item MenuItem) *CommandError {
	if !item.IsAvailable {
		return NewFailedPreconditionf("%s: %s", ErrMsgMenuItemUnavail, item.ID)
	}
	return nil
}

// RequireNotEmpty checks that the cart has at least one line.
func RequireNotEmpty(cart Cart) *CommandError {
	if cart.IsEmpty() {
		return NewFailedPrecondition(ErrMsgCartEmpty)
	}
	return nil
}
