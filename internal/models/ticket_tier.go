package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketTier is a named class of tickets within an event. Sold never
// exceeds Quantity; the storage layer enforces that on every increment.
type TicketTier struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_event_tier_name" json:"event_id"`
	Name      string    `gorm:"not null;uniqueIndex:idx_event_tier_name" json:"name"`
	Price     int       `gorm:"not null" json:"price"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Sold      int       `gorm:"not null;default:0" json:"sold"`
	Position  int       `gorm:"not null;default:0" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (tier *TicketTier) BeforeCreate(tx *gorm.DB) (err error) {
	if tier.ID == uuid.Nil {
		tier.ID = uuid.New()
	}
	return
}
