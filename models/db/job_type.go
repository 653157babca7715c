package dbmodels

// Тип дизайн-задания со сроком исполнения в рабочих днях
type JobType struct {
	BaseSpaceModel
	Name           string `gorm:"type:varchar(255)"`
	SlaWorkingDays int
	Archived       bool
}
