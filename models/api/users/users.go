package usersapimodels

import (
	"strings"

	"jd-portal-backend/models"
	dbmodels "jd-portal-backend/models/db"
)

type UserCreateData struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      models.UserRole `json:"role"`
}

func (r UserCreateData) Validate() error {
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		return models.NewValidationError("не указан корректный email")
	}
	if len(r.Password) < 6 {
		return models.NewValidationError("пароль короче 6 символов")
	}
	if r.FirstName == "" || r.LastName == "" {
		return models.NewValidationError("не указаны имя и фамилия")
	}
	switch r.Role {
	case models.SpaceAdminRole, models.RequesterRole, models.ApproverRole, models.DesignerRole:
	default:
		return models.NewValidationError("неизвестная роль: %v", r.Role)
	}
	return nil
}

type UserView struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	FullName  string          `json:"full_name"`
	Role      models.UserRole `json:"role"`
	IsActive  bool            `json:"is_active"`
}

func UserConvert(rec dbmodels.PortalUser) UserView {
	return UserView{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		FullName:  rec.GetFullName(),
		Role:      rec.Role,
		IsActive:  rec.IsActive,
	}
}
