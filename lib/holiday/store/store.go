package holidaystore

import (
	"time"

	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.Holiday) (id string, err error)
	Delete(spaceID, id string) error
	List(spaceID string) (list []dbmodels.Holiday, err error)
	ListDates(spaceID string) (dates []time.Time, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Holiday) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.Holiday{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.Delete(&rec).Error
}

func (i impl) List(spaceID string) (list []dbmodels.Holiday, err error) {
	list = []dbmodels.Holiday{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Order("date").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListDates(spaceID string) (dates []time.Time, err error) {
	list, err := i.List(spaceID)
	if err != nil {
		return nil, err
	}
	dates = make([]time.Time, 0, len(list))
	for _, rec := range list {
		dates = append(dates, rec.Date)
	}
	return dates, nil
}
