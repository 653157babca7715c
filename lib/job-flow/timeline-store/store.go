package timelinestore

import (
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.TimelineEntry) (id string, err error)
	List(spaceID, jobID string) (list []dbmodels.TimelineEntry, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.TimelineEntry) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(spaceID, jobID string) (list []dbmodels.TimelineEntry, err error) {
	list = []dbmodels.TimelineEntry{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Preload("Actor").
		Order("created_at").
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
