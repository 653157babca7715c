package portaluserhandler

import (
	"jd-portal-backend/db"
	authhandler "jd-portal-backend/lib/auth"
	portaluserstore "jd-portal-backend/lib/portal-users/store"
	"jd-portal-backend/models"
	usersapimodels "jd-portal-backend/models/api/users"
	dbmodels "jd-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, data usersapimodels.UserCreateData) (id string, err error)
	List(spaceID string) (list []usersapimodels.UserView, err error)
	GetByID(id string) (view usersapimodels.UserView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: portaluserstore.NewInstance(db.DB),
	}
}

type impl struct {
	store portaluserstore.Provider
}

func (i impl) Create(spaceID string, data usersapimodels.UserCreateData) (id string, err error) {
	logger := log.
		WithField("space_id", spaceID).
		WithField("email", data.Email)
	exist, err := i.store.GetByEmail(data.Email)
	if err != nil {
		return "", err
	}
	if exist != nil {
		return "", models.NewValidationError("пользователь с таким email уже есть")
	}
	hash, err := authhandler.HashPassword(data.Password)
	if err != nil {
		logger.WithError(err).Error("ошибка хеширования пароля")
		return "", err
	}
	rec := dbmodels.PortalUser{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Email:        data.Email,
		PasswordHash: hash,
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		Role:         data.Role,
		IsActive:     true,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		logger.WithError(err).Error("ошибка создания пользователя")
		return "", err
	}
	logger.Info("создан пользователь портала")
	return id, nil
}

func (i impl) List(spaceID string) (list []usersapimodels.UserView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]usersapimodels.UserView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, usersapimodels.UserConvert(rec))
	}
	return result, nil
}

func (i impl) GetByID(id string) (view usersapimodels.UserView, err error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return view, err
	}
	if rec == nil {
		return view, models.NewValidationError("пользователь не найден")
	}
	return usersapimodels.UserConvert(*rec), nil
}
