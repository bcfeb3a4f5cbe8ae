package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mfadhli/eventra/internal/models"
	"github.com/mfadhli/eventra/internal/ticketing"
)

// MemStore is an in-memory ticketing.Store for tests. WithTx serializes on
// a mutex and rolls the whole state back when the closure fails, mirroring
// the transactional guarantee of the postgres store.
type MemStore struct {
	mu       sync.Mutex
	events   map[uuid.UUID]*models.Event
	bookings map[uuid.UUID]*models.Booking
	clock    int64

	// FailCreateBooking makes CreateBooking return this error when set.
	FailCreateBooking error
}

func NewMemStore() *MemStore {
	return &MemStore{
		events:   make(map[uuid.UUID]*models.Event),
		bookings: make(map[uuid.UUID]*models.Booking),
	}
}

// SeedEvent stores the event as given, assigning an ID and creation time
// when missing.
func (s *MemStore) SeedEvent(event *models.Event) *models.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
		event.UpdatedAt = event.CreatedAt
	}
	s.events[event.ID] = copyEvent(event)
	return event
}

func (s *MemStore) WithTx(ctx context.Context, fn func(tx ticketing.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	events, bookings := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.events, s.bookings = events, bookings
		return err
	}
	return nil
}

func (s *MemStore) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getEvent(id)
}

func (s *MemStore) CreateEvent(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createEvent(event)
}

func (s *MemStore) TouchEvent(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchEvent(id)
}

func (s *MemStore) FindEvents(ctx context.Context, filter ticketing.EventFilter) ([]models.Event, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findEvents(filter)
}

func (s *MemStore) ReplaceTiers(ctx context.Context, eventID uuid.UUID, tiers []models.TicketTier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceTiers(eventID, tiers)
}

func (s *MemStore) MarkPublished(ctx context.Context, eventID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markPublished(eventID)
}

func (s *MemStore) ReserveTickets(ctx context.Context, tierID uuid.UUID, quantity int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reserveTickets(tierID, quantity)
}

func (s *MemStore) CreateBooking(ctx context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createBooking(booking)
}

func (s *MemStore) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getBooking(id)
}

func (s *MemStore) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listUserBookings(userID)
}

// memTx is the transaction-bound view handed to WithTx closures. The
// enclosing WithTx already holds the lock, so it calls the unlocked core.
type memTx struct {
	s *MemStore
}

func (t *memTx) WithTx(ctx context.Context, fn func(tx ticketing.Store) error) error {
	return fn(t)
}

func (t *memTx) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	return t.s.getEvent(id)
}

func (t *memTx) CreateEvent(ctx context.Context, event *models.Event) error {
	return t.s.createEvent(event)
}

func (t *memTx) TouchEvent(ctx context.Context, id uuid.UUID) error {
	return t.s.touchEvent(id)
}

func (t *memTx) FindEvents(ctx context.Context, filter ticketing.EventFilter) ([]models.Event, int64, error) {
	return t.s.findEvents(filter)
}

func (t *memTx) ReplaceTiers(ctx context.Context, eventID uuid.UUID, tiers []models.TicketTier) error {
	return t.s.replaceTiers(eventID, tiers)
}

func (t *memTx) MarkPublished(ctx context.Context, eventID uuid.UUID) (bool, error) {
	return t.s.markPublished(eventID)
}

func (t *memTx) ReserveTickets(ctx context.Context, tierID uuid.UUID, quantity int) (bool, error) {
	return t.s.reserveTickets(tierID, quantity)
}

func (t *memTx) CreateBooking(ctx context.Context, booking *models.Booking) error {
	return t.s.createBooking(booking)
}

func (t *memTx) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return t.s.getBooking(id)
}

func (t *memTx) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return t.s.listUserBookings(userID)
}

func (s *MemStore) getEvent(id uuid.UUID) (*models.Event, error) {
	event, ok := s.events[id]
	if !ok {
		return nil, ticketing.ErrEventNotFound
	}
	return copyEvent(event), nil
}

func (s *MemStore) createEvent(event *models.Event) error {
	event.CreatedAt = s.now()
	event.UpdatedAt = event.CreatedAt
	s.events[event.ID] = copyEvent(event)
	return nil
}

func (s *MemStore) touchEvent(id uuid.UUID) error {
	event, ok := s.events[id]
	if !ok {
		return ticketing.ErrEventNotFound
	}
	event.UpdatedAt = s.now()
	return nil
}

func (s *MemStore) findEvents(filter ticketing.EventFilter) ([]models.Event, int64, error) {
	var matched []*models.Event
	for _, event := range s.events {
		if event.Status != models.EventPublished {
			continue
		}
		if filter.Search != "" && !containsFold(event.Title, filter.Search) &&
			!containsFold(event.Description, filter.Search) &&
			!containsFold(event.Category, filter.Search) {
			continue
		}
		if filter.Location != "" && !containsFold(event.Location, filter.Location) {
			continue
		}
		if filter.Category != "" && !containsFold(event.Category, filter.Category) {
			continue
		}
		matched = append(matched, event)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}

	out := make([]models.Event, 0, end-start)
	for _, event := range matched[start:end] {
		out = append(out, *copyEvent(event))
	}
	return out, total, nil
}

func (s *MemStore) replaceTiers(eventID uuid.UUID, tiers []models.TicketTier) error {
	event, ok := s.events[eventID]
	if !ok {
		return ticketing.ErrEventNotFound
	}
	event.Tiers = append([]models.TicketTier(nil), tiers...)
	return nil
}

func (s *MemStore) markPublished(eventID uuid.UUID) (bool, error) {
	event, ok := s.events[eventID]
	if !ok {
		return false, ticketing.ErrEventNotFound
	}
	if event.Status != models.EventDraft {
		return false, nil
	}
	event.Status = models.EventPublished
	event.UpdatedAt = s.now()
	return true, nil
}

func (s *MemStore) reserveTickets(tierID uuid.UUID, quantity int) (bool, error) {
	for _, event := range s.events {
		for i := range event.Tiers {
			tier := &event.Tiers[i]
			if tier.ID != tierID {
				continue
			}
			if tier.Sold+quantity > tier.Quantity {
				return false, nil
			}
			tier.Sold += quantity
			return true, nil
		}
	}
	return false, fmt.Errorf("tier %s not found", tierID)
}

func (s *MemStore) createBooking(booking *models.Booking) error {
	if s.FailCreateBooking != nil {
		return s.FailCreateBooking
	}
	booking.CreatedAt = s.now()
	booking.UpdatedAt = booking.CreatedAt
	b := *booking
	s.bookings[b.ID] = &b
	return nil
}

func (s *MemStore) getBooking(id uuid.UUID) (*models.Booking, error) {
	booking, ok := s.bookings[id]
	if !ok {
		return nil, ticketing.ErrBookingNotFound
	}
	b := *booking
	return &b, nil
}

func (s *MemStore) listUserBookings(userID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	for _, booking := range s.bookings {
		if booking.UserID == userID {
			out = append(out, *booking)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *MemStore) snapshot() (map[uuid.UUID]*models.Event, map[uuid.UUID]*models.Booking) {
	events := make(map[uuid.UUID]*models.Event, len(s.events))
	for id, event := range s.events {
		events[id] = copyEvent(event)
	}
	bookings := make(map[uuid.UUID]*models.Booking, len(s.bookings))
	for id, booking := range s.bookings {
		b := *booking
		bookings[id] = &b
	}
	return events, bookings
}

// now hands out strictly increasing timestamps so creation-order sorts are
// deterministic even within one test.
func (s *MemStore) now() time.Time {
	s.clock++
	return time.Unix(1700000000, 0).Add(time.Duration(s.clock) * time.Millisecond)
}

func copyEvent(event *models.Event) *models.Event {
	e := *event
	e.Tiers = append([]models.TicketTier(nil), event.Tiers...)
	return &e
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
