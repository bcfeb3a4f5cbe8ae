package ticketing

import "errors"

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrTierNotFound          = errors.New("ticket tier not found")
	ErrBookingNotFound       = errors.New("booking not found")
	ErrNotBookable           = errors.New("event is not open for booking")
	ErrInvalidQuantity       = errors.New("quantity must be at least 1")
	ErrInsufficientInventory = errors.New("not enough tickets available")
	ErrNoTickets             = errors.New("event has no ticket tiers")
	ErrAlreadyPublished      = errors.New("event is already published")
	ErrEventPublished        = errors.New("tickets cannot be changed after publishing")
	ErrNotOwner              = errors.New("only the event organizer can do that")
	ErrValidation            = errors.New("invalid input")
)
