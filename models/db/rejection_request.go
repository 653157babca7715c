package dbmodels

import (
	"time"

	"jd-portal-backend/models"
)

// Запрос исполнителя на отказ от задания. Один незакрытый запрос на задание;
// закрытый запрос — неизменяемая история.
type RejectionRequest struct {
	BaseSpaceModel
	JobID       string `gorm:"type:varchar(36);index"`
	Job         *DesignJob
	Reason      string
	RequestedBy string      `gorm:"type:varchar(36)"`
	Requester   *PortalUser `gorm:"foreignKey:RequestedBy"`

	// после этого момента запрос закрывается автоматически
	AutoCloseAt *time.Time `gorm:"index"`

	Resolution     models.RejectionResolution `gorm:"type:varchar(20);index"`
	ResolvedBy     *string                    `gorm:"type:varchar(36)"`
	ResolvedAt     *time.Time
	ResolutionNote string
}
