package rejectionstore

import (
	"time"

	"jd-portal-backend/models"
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.RejectionRequest) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.RejectionRequest, err error)
	GetPendingByJob(spaceID, jobID string) (rec *dbmodels.RejectionRequest, err error)
	ListByJob(spaceID, jobID string) (list []dbmodels.RejectionRequest, err error)
	ListExpired(now time.Time) (list []dbmodels.RejectionRequest, err error)
	ResolveIfPending(id string, resolution models.RejectionResolution, resolvedBy, note string) (resolved bool, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.RejectionRequest) (id string, err error) {
	err = i.db.Omit(clause.Associations).Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.RejectionRequest, error) {
	rec := dbmodels.RejectionRequest{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload("Job").
		Preload("Requester").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetPendingByJob(spaceID, jobID string) (*dbmodels.RejectionRequest, error) {
	rec := dbmodels.RejectionRequest{}
	err := i.db.
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Where("resolution = ?", models.RejectionResolutionPending).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) ListByJob(spaceID, jobID string) (list []dbmodels.RejectionRequest, err error) {
	list = []dbmodels.RejectionRequest{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("job_id = ?", jobID).
		Preload("Requester").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListExpired — незакрытые запросы с прошедшим дедлайном, по всем
// пространствам
func (i impl) ListExpired(now time.Time) (list []dbmodels.RejectionRequest, err error) {
	list = []dbmodels.RejectionRequest{}
	err = i.db.
		Where("resolution = ?", models.RejectionResolutionPending).
		Where("auto_close_at IS NOT NULL").
		Where("auto_close_at <= ?", now).
		Preload("Job").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ResolveIfPending закрывает запрос, только если он еще не закрыт.
// resolved=false — запрос уже закрыли раньше, повторное закрытие не
// перетирает историю.
func (i impl) ResolveIfPending(id string, resolution models.RejectionResolution, resolvedBy, note string) (bool, error) {
	now := time.Now()
	tx := i.db.
		Model(&dbmodels.RejectionRequest{}).
		Where("id = ?", id).
		Where("resolution = ?", models.RejectionResolutionPending).
		Updates(map[string]interface{}{
			"resolution":      resolution,
			"resolved_by":     resolvedBy,
			"resolved_at":     now,
			"resolution_note": note,
		})
	if tx.Error != nil {
		return false, errors.Wrap(tx.Error, "ошибка закрытия запроса на отказ")
	}
	return tx.RowsAffected > 0, nil
}
