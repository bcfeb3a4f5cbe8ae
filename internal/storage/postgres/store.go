package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mfadhli/eventra/internal/models"
	"github.com/mfadhli/eventra/internal/ticketing"
)

// Store implements ticketing.Store on top of gorm/postgres.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) WithTx(ctx context.Context, fn func(tx ticketing.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(txdb *gorm.DB) error {
		return fn(&Store{db: txdb})
	})
}

func (s *Store) GetEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("id = ?", id).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticketing.ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (s *Store) CreateEvent(ctx context.Context, event *models.Event) error {
	if err := s.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *Store) TouchEvent(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", time.Now().UTC()).Error
	if err != nil {
		return fmt.Errorf("touch event: %w", err)
	}
	return nil
}

func (s *Store) FindEvents(ctx context.Context, filter ticketing.EventFilter) ([]models.Event, int64, error) {
	query := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("status = ?", models.EventPublished)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ? OR category ILIKE ?", like, like, like)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Category != "" {
		query = query.Where("category ILIKE ?", "%"+filter.Category+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var events []models.Event
	err := query.
		Preload("Tiers", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Offset((page - 1) * limit).
		Limit(limit).
		Order("created_at DESC").
		Find(&events).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	return events, total, nil
}

func (s *Store) ReplaceTiers(ctx context.Context, eventID uuid.UUID, tiers []models.TicketTier) error {
	db := s.db.WithContext(ctx)
	if err := db.Where("event_id = ?", eventID).Delete(&models.TicketTier{}).Error; err != nil {
		return fmt.Errorf("clear tiers: %w", err)
	}
	if len(tiers) == 0 {
		return nil
	}
	if err := db.Create(&tiers).Error; err != nil {
		return fmt.Errorf("create tiers: %w", err)
	}
	return nil
}

func (s *Store) MarkPublished(ctx context.Context, eventID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ? AND status = ?", eventID, models.EventDraft).
		Updates(map[string]any{"status": models.EventPublished, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, fmt.Errorf("mark published: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

// ReserveTickets is the oversell guard: the sold increment only applies
// while sold + quantity still fits the allotment, checked and written in a
// single statement.
func (s *Store) ReserveTickets(ctx context.Context, tierID uuid.UUID, quantity int) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&models.TicketTier{}).
		Where("id = ? AND sold + ? <= quantity", tierID, quantity).
		UpdateColumn("sold", gorm.Expr("sold + ?", quantity))
	if result.Error != nil {
		return false, fmt.Errorf("reserve tickets: %w", result.Error)
	}
	return result.RowsAffected == 1, nil
}

func (s *Store) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if err := s.db.WithContext(ctx).Create(booking).Error; err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	return nil
}

func (s *Store) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ticketing.ErrBookingNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &booking, nil
}

func (s *Store) ListUserBookings(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := s.db.WithContext(ctx).
		Preload("Event").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}
