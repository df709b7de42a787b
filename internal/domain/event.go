package domain

import "time"

const (
	EventUpcoming  = "UPCOMING"
	EventOngoing   = "ONGOING"
	EventCompleted = "COMPLETED"
)

func ValidEventStatus(s string) bool {
	switch s {
	case EventUpcoming, EventOngoing, EventCompleted:
		return true
	}
	return false
}

type Event struct {
	ID          EventID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"not null;index:ix_events_title" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Date        time.Time `gorm:"not null;index:ix_events_date" json:"date"`
	Location    string    `gorm:"not null" json:"location"`
	OrganizerID UserID    `gorm:"type:uuid;index" json:"organizerId"`
	Status      string    `gorm:"not null;default:UPCOMING" json:"status"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"not null" json:"updatedAt"`
}

func (Event) TableName() string { return "events" }
