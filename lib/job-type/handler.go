package jobtypeprovider

import (
	"jd-portal-backend/db"
	jobtypestore "jd-portal-backend/lib/job-type/store"
	dictapimodels "jd-portal-backend/models/api/dict"
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.JobTypeData) (id string, err error)
	Update(spaceID, id string, request dictapimodels.JobTypeData) error
	Get(spaceID, id string) (item dictapimodels.JobTypeView, err error)
	List(spaceID string) (list []dictapimodels.JobTypeView, err error)
	Delete(spaceID, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: jobtypestore.NewInstance(db.DB),
	}
}

type impl struct {
	store jobtypestore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.JobTypeData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	rec := dbmodels.JobType{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Name:           request.Name,
		SlaWorkingDays: request.SlaWorkingDays,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("job_type_name", rec.Name).
		WithField("rec_id", id).
		Info("создан тип задания")
	return id, nil
}

func (i impl) Update(spaceID, id string, request dictapimodels.JobTypeData) error {
	logger := log.WithField("space_id", spaceID).
		WithField("rec_id", id)
	updMap := map[string]interface{}{
		"name":             request.Name,
		"sla_working_days": request.SlaWorkingDays,
	}
	err := i.store.Update(spaceID, id, updMap)
	if err != nil {
		return err
	}
	logger.Info("обновлен тип задания")
	return nil
}

func (i impl) Get(spaceID, id string) (item dictapimodels.JobTypeView, err error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return dictapimodels.JobTypeView{}, err
	}
	if rec == nil {
		return dictapimodels.JobTypeView{}, errors.New("тип задания не найден")
	}
	return dictapimodels.JobTypeConvert(*rec), nil
}

func (i impl) List(spaceID string) (list []dictapimodels.JobTypeView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.JobTypeView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.JobTypeConvert(rec))
	}
	return result, nil
}

func (i impl) Delete(spaceID, id string) error {
	// типы не удаляются физически, на них могут ссылаться задания
	return i.store.Update(spaceID, id, map[string]interface{}{"archived": true})
}
