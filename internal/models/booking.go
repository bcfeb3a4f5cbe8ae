package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingConfirmed = "confirmed"
	// BookingCancelled is a reserved status value. No operation writes it
	// yet; a future cancellation flow must re-credit the tier's sold count
	// atomically when it flips a booking to this status.
	BookingCancelled = "cancelled"
)

type Booking struct {
	ID          uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	EventID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"event_id"`
	Event       *Event      `gorm:"foreignKey:EventID" json:"-"`
	UserID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	User        *User       `gorm:"foreignKey:UserID" json:"-"`
	TierID      uuid.UUID   `gorm:"type:uuid;not null" json:"tier_id"`
	Tier        *TicketTier `gorm:"foreignKey:TierID" json:"-"`
	TierName    string      `gorm:"not null" json:"tier_name"`
	Quantity    int         `gorm:"not null" json:"quantity"`
	TotalAmount int         `gorm:"not null" json:"total_amount"`
	Status      string      `gorm:"not null;default:'confirmed'" json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

func (booking *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if booking.ID == uuid.Nil {
		booking.ID = uuid.New()
	}
	return
}
