package chainstore

import (
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	SaveSnapshot(jobID string, levels []dbmodels.JobApprovalLevel) error
	CreateAction(rec dbmodels.JobLevelAction) (id string, err error)
	DeleteActions(jobID string) error
	ListActions(jobID string) (list []dbmodels.JobLevelAction, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// SaveSnapshot перезаписывает снапшот уровней задания целиком
func (i impl) SaveSnapshot(jobID string, levels []dbmodels.JobApprovalLevel) error {
	err := i.db.
		Where("job_id = ?", jobID).
		Delete(&dbmodels.JobApprovalLevel{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка очистки снапшота согласования")
	}
	for _, level := range levels {
		level.JobID = jobID
		if err = i.db.Create(&level).Error; err != nil {
			return errors.Wrapf(err, "ошибка сохранения снапшота согласования, уровень %v", level.Ordinal)
		}
	}
	return nil
}

func (i impl) CreateAction(rec dbmodels.JobLevelAction) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

// DeleteActions сбрасывает решения согласующих; вызывается при возврате
// задания, пересогласование начинается с чистого листа
func (i impl) DeleteActions(jobID string) error {
	return i.db.
		Where("job_id = ?", jobID).
		Delete(&dbmodels.JobLevelAction{}).
		Error
}

func (i impl) ListActions(jobID string) (list []dbmodels.JobLevelAction, err error) {
	list = []dbmodels.JobLevelAction{}
	err = i.db.
		Where("job_id = ?", jobID).
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
