package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EventDraft     = "draft"
	EventPublished = "published"
)

type Event struct {
	ID          uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	OrganizerID uuid.UUID    `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Organizer   *User        `gorm:"foreignKey:OrganizerID" json:"-"`
	Title       string       `gorm:"not null" json:"title"`
	Description string       `gorm:"not null" json:"description"`
	Category    string       `gorm:"not null" json:"category"`
	Location    string       `gorm:"not null" json:"location"`
	ImageURL    string       `json:"image_url,omitempty"`
	StartTime   time.Time    `gorm:"not null" json:"start_time"`
	EndTime     time.Time    `gorm:"not null" json:"end_time"`
	Status      string       `gorm:"not null;default:'draft'" json:"status"`
	Tiers       []TicketTier `gorm:"constraint:OnDelete:CASCADE" json:"tickets"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
