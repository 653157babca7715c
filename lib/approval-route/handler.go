package approvalrouteprovider

import (
	"jd-portal-backend/db"
	approvalroutestore "jd-portal-backend/lib/approval-route/store"
	portaluserstore "jd-portal-backend/lib/portal-users/store"
	"jd-portal-backend/models"
	dictapimodels "jd-portal-backend/models/api/dict"
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.ApprovalRouteData) (id string, err error)
	Update(spaceID, id string, request dictapimodels.ApprovalRouteData) error
	Get(spaceID, id string) (item dictapimodels.ApprovalRouteView, err error)
	List(spaceID string) (list []dictapimodels.ApprovalRouteView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     approvalroutestore.NewInstance(db.DB),
		userStore: portaluserstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     approvalroutestore.Provider
	userStore portaluserstore.Provider
}

// checkUsers проверяет, что все согласующие и исполнитель по умолчанию
// существуют в пространстве
func (i impl) checkUsers(spaceID string, request dictapimodels.ApprovalRouteData) error {
	for _, level := range request.Levels {
		for _, userID := range level.ApproverIDs {
			user, err := i.userStore.GetByID(userID)
			if err != nil {
				return err
			}
			if user == nil || user.SpaceID != spaceID {
				return models.NewConfigurationError("согласующий с уровня %v не найден в справочнике сотрудников", level.Ordinal)
			}
		}
	}
	if request.DefaultAssigneeID != "" {
		user, err := i.userStore.GetByID(request.DefaultAssigneeID)
		if err != nil {
			return err
		}
		if user == nil || user.SpaceID != spaceID {
			return models.NewConfigurationError("исполнитель по умолчанию не найден в справочнике сотрудников")
		}
	}
	return nil
}

func (i impl) Create(spaceID string, request dictapimodels.ApprovalRouteData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	err = i.checkUsers(spaceID, request)
	if err != nil {
		return "", err
	}
	rec := dbmodels.ApprovalRoute{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name: request.Name,
	}
	if request.DefaultAssigneeID != "" {
		rec.DefaultAssigneeID = &request.DefaultAssigneeID
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := approvalroutestore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		return store.SaveLevels(id, levelsConvert(request.Levels))
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания маршрута согласования")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		Info("создан маршрут согласования")
	return id, nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.ApprovalRouteData) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	err := i.checkUsers(spaceID, request)
	if err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"name": request.Name,
	}
	if request.DefaultAssigneeID != "" {
		updMap["default_assignee_id"] = request.DefaultAssigneeID
	} else {
		updMap["default_assignee_id"] = nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := approvalroutestore.NewInstance(tx)
		if err := store.Update(spaceID, id, updMap); err != nil {
			return err
		}
		return store.SaveLevels(id, levelsConvert(request.Levels))
	})
	if err != nil {
		return err
	}
	logger.Info("обновлен маршрут согласования")
	return nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.ApprovalRouteView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.ApprovalRouteView{}, err
	}
	if rec == nil {
		return dictapimodels.ApprovalRouteView{}, errors.New("маршрут не найден")
	}
	return dictapimodels.ApprovalRouteConvert(*rec), nil
}

func (i impl) List(spaceID string) (list []dictapimodels.ApprovalRouteView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.ApprovalRouteView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.ApprovalRouteConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(spaceID, id string) error {
	return i.store.Delete(spaceID, id)
}

func levelsConvert(levels []dictapimodels.ApprovalRouteLevelData) []dbmodels.ApprovalRouteLevel {
	result := make([]dbmodels.ApprovalRouteLevel, 0, len(levels))
	for _, level := range levels {
		result = append(result, dbmodels.ApprovalRouteLevel{
			Ordinal:     level.Ordinal,
			Rule:        level.Rule,
			ApproverIDs: level.ApproverIDs,
		})
	}
	return result
}
