package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EventLog is an append-only audit record of a published domain event
type EventLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	EventName string    `gorm:"size:100;not null;index" json:"event_name"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Data      string    `gorm:"type:text;not null" json:"data"`
}

// BeforeCreate generates a UUID before creating a new event log
func (e *EventLog) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the EventLog model
func (EventLog) TableName() string {
	return "event_logs"
}
