package dbmodels

import (
	"fmt"

	"jd-portal-backend/models"
)

type Space struct {
	BaseModel
	Name        string `gorm:"type:varchar(255)"`
	Description string
	Users       []PortalUser `gorm:"foreignKey:SpaceID"`
}

type PortalUser struct {
	BaseSpaceModel
	Space        *Space
	Email        string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordHash string `gorm:"type:varchar(255)"`
	FirstName    string `gorm:"type:varchar(255)"`
	LastName     string `gorm:"type:varchar(255)"`
	Role         models.UserRole `gorm:"type:varchar(100)"`
	IsActive     bool   `gorm:"default:true"`
}

func (u PortalUser) GetFullName() string {
	return fmt.Sprintf("%v %v", u.FirstName, u.LastName)
}
