package holidayprovider

import (
	"jd-portal-backend/db"
	holidaystore "jd-portal-backend/lib/holiday/store"
	"jd-portal-backend/lib/workcalendar"
	dictapimodels "jd-portal-backend/models/api/dict"
	dbmodels "jd-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(spaceID string, request dictapimodels.HolidayData) (id string, err error)
	Delete(spaceID, id string) error
	List(spaceID string) (list []dictapimodels.HolidayView, err error)
	// HolidaySet отдает производственный календарь пространства для расчетов
	HolidaySet(spaceID string) (workcalendar.HolidaySet, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store: holidaystore.NewInstance(db.DB),
	}
}

type impl struct {
	store holidaystore.Provider
}

func (i impl) Create(spaceID string, request dictapimodels.HolidayData) (id string, err error) {
	logger := log.WithField("space_id", spaceID)
	rec := dbmodels.Holiday{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		Date: workcalendar.Normalize(request.Date.Time),
		Name: request.Name,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", err
	}
	logger.
		WithField("holiday_date", request.Date.Format("2006-01-02")).
		Info("добавлен нерабочий день")
	return id, nil
}

func (i impl) Delete(spaceID, id string) error {
	return i.store.Delete(spaceID, id)
}

func (i impl) List(spaceID string) (list []dictapimodels.HolidayView, err error) {
	recList, err := i.store.List(spaceID)
	if err != nil {
		return nil, err
	}
	result := make([]dictapimodels.HolidayView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, dictapimodels.HolidayConvert(rec))
	}
	return result, nil
}

func (i impl) HolidaySet(spaceID string) (workcalendar.HolidaySet, error) {
	dates, err := i.store.ListDates(spaceID)
	if err != nil {
		return nil, err
	}
	return workcalendar.NewHolidaySet(dates), nil
}
