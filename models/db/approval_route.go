package dbmodels

import (
	"jd-portal-backend/models"

	"github.com/lib/pq"
)

// Настраиваемый маршрут согласования. Читается только в момент отправки
// задания на согласование и копируется в снапшот задания, дальнейшие правки
// маршрута на отправленные задания не влияют.
type ApprovalRoute struct {
	BaseSpaceModel
	Name              string  `gorm:"type:varchar(255)"`
	DefaultAssigneeID *string `gorm:"type:varchar(36)"`
	DefaultAssignee   *PortalUser `gorm:"foreignKey:DefaultAssigneeID"`
	Levels            []ApprovalRouteLevel `gorm:"foreignKey:RouteID;constraint:OnDelete:CASCADE"`
}

type ApprovalRouteLevel struct {
	BaseModel
	RouteID     string              `gorm:"type:varchar(36);index"`
	Ordinal     int
	Rule        models.ApprovalRule `gorm:"type:varchar(10)"`
	ApproverIDs pq.StringArray      `gorm:"type:text[]"`
}
