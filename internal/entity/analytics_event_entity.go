package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AnalyticsEvent is one recorded chat analytics event.
type AnalyticsEvent struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	EventType string         `gorm:"type:varchar(64);index;not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time      `gorm:"index"`
}

func (AnalyticsEvent) TableName() string {
	return "analytics_events"
}
