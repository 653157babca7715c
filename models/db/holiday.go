package dbmodels

import "time"

// Нерабочий день производственного календаря пространства
type Holiday struct {
	BaseSpaceModel
	Date time.Time `gorm:"type:date;index"`
	Name string    `gorm:"type:varchar(255)"`
}
