package ticketing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mfadhli/eventra/internal/models"
)

// Service owns the event lifecycle and the booking transaction. All
// mutations run inside a single store transaction so a failed step leaves
// no partial effect behind.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

type EventInput struct {
	Title       string
	Description string
	Category    string
	Location    string
	ImageURL    string
	StartTime   time.Time
	EndTime     time.Time
}

type TierInput struct {
	Name     string
	Price    int
	Quantity int
}

func (s *Service) CreateEvent(ctx context.Context, organizerID uuid.UUID, in EventInput) (*models.Event, error) {
	switch {
	case strings.TrimSpace(in.Title) == "":
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	case strings.TrimSpace(in.Description) == "":
		return nil, fmt.Errorf("%w: description is required", ErrValidation)
	case strings.TrimSpace(in.Category) == "":
		return nil, fmt.Errorf("%w: category is required", ErrValidation)
	case strings.TrimSpace(in.Location) == "":
		return nil, fmt.Errorf("%w: location is required", ErrValidation)
	case in.StartTime.IsZero() || in.EndTime.IsZero():
		return nil, fmt.Errorf("%w: start and end times are required", ErrValidation)
	case !in.EndTime.After(in.StartTime):
		return nil, fmt.Errorf("%w: end time must be after start time", ErrValidation)
	}

	event := &models.Event{
		ID:          uuid.New(),
		OrganizerID: organizerID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Location:    in.Location,
		ImageURL:    in.ImageURL,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		Status:      models.EventDraft,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *Service) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return s.store.GetEvent(ctx, id)
}

func (s *Service) ListEvents(ctx context.Context, filter EventFilter) ([]models.Event, int64, error) {
	return s.store.FindEvents(ctx, filter)
}

// SetTickets replaces the event's tier sequence wholesale. Tiers are only
// editable while the event is a draft; sold counts start over at zero.
func (s *Service) SetTickets(ctx context.Context, eventID, callerID uuid.UUID, tiers []TierInput) (*models.Event, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: at least one ticket tier is required", ErrValidation)
	}
	seen := make(map[string]bool, len(tiers))
	replacement := make([]models.TicketTier, 0, len(tiers))
	for i, tier := range tiers {
		name := strings.TrimSpace(tier.Name)
		switch {
		case name == "":
			return nil, fmt.Errorf("%w: ticket tier name is required", ErrValidation)
		case seen[name]:
			return nil, fmt.Errorf("%w: duplicate ticket tier %q", ErrValidation, name)
		case tier.Price < 0:
			return nil, fmt.Errorf("%w: ticket tier %q price cannot be negative", ErrValidation, name)
		case tier.Quantity <= 0:
			return nil, fmt.Errorf("%w: ticket tier %q quantity must be at least 1", ErrValidation, name)
		}
		seen[name] = true
		replacement = append(replacement, models.TicketTier{
			ID:       uuid.New(),
			EventID:  eventID,
			Name:     name,
			Price:    tier.Price,
			Quantity: tier.Quantity,
			Position: i,
		})
	}

	var updated *models.Event
	err := s.store.WithTx(ctx, func(tx Store) error {
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.OrganizerID != callerID {
			return ErrNotOwner
		}
		if event.Status != models.EventDraft {
			return ErrEventPublished
		}
		if err := tx.ReplaceTiers(ctx, eventID, replacement); err != nil {
			return err
		}
		if err := tx.TouchEvent(ctx, eventID); err != nil {
			return err
		}
		updated, err = tx.GetEvent(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Publish flips a draft event to published. The transition is terminal and
// happens at most once; an event without tiers cannot be published.
func (s *Service) Publish(ctx context.Context, eventID, callerID uuid.UUID) (*models.Event, error) {
	var published *models.Event
	err := s.store.WithTx(ctx, func(tx Store) error {
		event, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if event.OrganizerID != callerID {
			return ErrNotOwner
		}
		if event.Status == models.EventPublished {
			return ErrAlreadyPublished
		}
		if len(event.Tiers) == 0 {
			return ErrNoTickets
		}
		flipped, err := tx.MarkPublished(ctx, eventID)
		if err != nil {
			return err
		}
		if !flipped {
			return ErrAlreadyPublished
		}
		published, err = tx.GetEvent(ctx, eventID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return published, nil
}

// PlaceBooking books quantity tickets against one of the event's tiers and
// returns the booking together with the freshly loaded event. The sold
// increment is a conditional write, so concurrent bookings cannot jointly
// oversell; booking creation happens in the same transaction, so an error
// anywhere leaves the tier untouched.
func (s *Service) PlaceBooking(ctx context.Context, eventID, userID uuid.UUID, quantity int, tierName string) (*models.Booking, *models.Event, error) {
	var (
		booking *models.Booking
		event   *models.Event
	)
	err := s.store.WithTx(ctx, func(tx Store) error {
		current, err := tx.GetEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if current.Status != models.EventPublished {
			return ErrNotBookable
		}
		if len(current.Tiers) == 0 {
			return ErrNoTickets
		}

		tier := &current.Tiers[0]
		if tierName != "" {
			tier = nil
			for i := range current.Tiers {
				if current.Tiers[i].Name == tierName {
					tier = &current.Tiers[i]
					break
				}
			}
			if tier == nil {
				return ErrTierNotFound
			}
		}

		if quantity <= 0 {
			return ErrInvalidQuantity
		}

		reserved, err := tx.ReserveTickets(ctx, tier.ID, quantity)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrInsufficientInventory
		}

		booking = &models.Booking{
			ID:          uuid.New(),
			EventID:     current.ID,
			UserID:      userID,
			TierID:      tier.ID,
			TierName:    tier.Name,
			Quantity:    quantity,
			TotalAmount: tier.Price * quantity,
			Status:      models.BookingConfirmed,
		}
		if err := tx.CreateBooking(ctx, booking); err != nil {
			return err
		}
		if err := tx.TouchEvent(ctx, current.ID); err != nil {
			return err
		}
		event, err = tx.GetEvent(ctx, current.ID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return booking, event, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.store.GetBooking(ctx, id)
}

func (s *Service) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return s.store.ListUserBookings(ctx, userID)
}
