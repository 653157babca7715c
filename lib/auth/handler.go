package authhandler

import (
	"jd-portal-backend/db"
	portaluserstore "jd-portal-backend/lib/portal-users/store"
	authutils "jd-portal-backend/lib/utils/auth-utils"
	authapimodels "jd-portal-backend/models/api/auth"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type Provider interface {
	Login(email, password string) (resp authapimodels.TokenResponse, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: portaluserstore.NewInstance(db.DB),
	}
}

type impl struct {
	userStore portaluserstore.Provider
}

func (i impl) Login(email, password string) (resp authapimodels.TokenResponse, err error) {
	logger := log.WithField("email", email)
	user, err := i.userStore.GetByEmail(email)
	if err != nil {
		logger.WithError(err).Error("ошибка получения пользователя")
		return resp, err
	}
	if user == nil || !user.IsActive {
		return resp, errors.New("неверный email или пароль")
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		return resp, errors.New("неверный email или пароль")
	}
	token, err := authutils.GetToken(user.ID, user.GetFullName(), user.SpaceID, user.Role)
	if err != nil {
		logger.WithError(err).Error("ошибка выпуска токена")
		return resp, err
	}
	resp.AccessToken = token
	return resp, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
