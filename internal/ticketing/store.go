package ticketing

import (
	"context"

	"github.com/google/uuid"

	"github.com/mfadhli/eventra/internal/models"
)

// EventFilter narrows FindEvents. All text filters are case-insensitive
// substring matches, AND-combined when more than one is set.
type EventFilter struct {
	Search   string
	Location string
	Category string
	Page     int
	Limit    int
}

// Store is the persistence collaborator the ticketing service runs on.
//
// ReserveTickets and MarkPublished are conditional writes: they apply the
// update only when the guard still holds and report whether a row changed.
// The oversell check lives in the store, not in application code, so two
// concurrent bookings can never both pass it.
type Store interface {
	// WithTx runs fn against a Store bound to a single transaction.
	// Writes made inside fn are discarded when fn returns an error.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) error
	TouchEvent(ctx context.Context, id uuid.UUID) error
	FindEvents(ctx context.Context, filter EventFilter) ([]models.Event, int64, error)

	// ReplaceTiers swaps the event's tier sequence wholesale.
	ReplaceTiers(ctx context.Context, eventID uuid.UUID, tiers []models.TicketTier) error
	// MarkPublished flips status draft -> published and reports whether
	// the event was still a draft.
	MarkPublished(ctx context.Context, eventID uuid.UUID) (bool, error)
	// ReserveTickets increments the tier's sold count by quantity only if
	// sold + quantity <= quantity allotted, and reports whether it did.
	ReserveTickets(ctx context.Context, tierID uuid.UUID, quantity int) (bool, error)

	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
}
