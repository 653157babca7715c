package dbmodels

import "jd-portal-backend/models"

// Запись ленты аудита задания, append-only
type TimelineEntry struct {
	BaseSpaceModel
	JobID     string                   `gorm:"type:varchar(36);index"`
	EventType models.TimelineEventType `gorm:"type:varchar(100)"`
	ActorID   string                   `gorm:"type:varchar(36)"`
	Actor     *PortalUser              `gorm:"foreignKey:ActorID"`
	Note      string
}
