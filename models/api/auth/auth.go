package authapimodels

import "jd-portal-backend/models"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() error {
	if r.Email == "" {
		return models.NewValidationError("не указан email")
	}
	if r.Password == "" {
		return models.NewValidationError("не указан пароль")
	}
	return nil
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
}
