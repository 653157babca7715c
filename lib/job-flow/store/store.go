package jobstore

import (
	"fmt"

	"jd-portal-backend/models"
	jobapimodels "jd-portal-backend/models/api/job"
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.DesignJob) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.DesignJob, err error)
	Update(spaceID, id string, updMap map[string]interface{}) error
	UpdateVersioned(spaceID, id string, version int, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID string, filter jobapimodels.JobFilter) (list []dbmodels.DesignJob, err error)
	ListCount(spaceID string, filter jobapimodels.JobFilter) (rowCount int64, err error)
	ListForExport(spaceID string, filter jobapimodels.JobFilter) (list []dbmodels.DesignJob, err error)
	NextReference(spaceID string, year int) (reference string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.DesignJob) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.DesignJob, error) {
	rec := dbmodels.DesignJob{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Preload(clause.Associations).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal")
		}).
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

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	updMap["version"] = gorm.Expr("version + 1")
	tx := i.db.
		Model(&dbmodels.DesignJob{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("задание не найдено")
	}
	return nil
}

// UpdateVersioned применяет изменения только к той версии записи, которую
// видел вызывающий; устаревшая версия — ConcurrentModificationError.
func (i impl) UpdateVersioned(spaceID, id string, version int, updMap map[string]interface{}) error {
	updMap["version"] = version + 1
	tx := i.db.
		Model(&dbmodels.DesignJob{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Where("version = ?", version).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return models.NewConcurrentModificationError(version)
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.DesignJob{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) listQuery(spaceID string, filter jobapimodels.JobFilter) *gorm.DB {
	tx := i.db.
		Model(&dbmodels.DesignJob{}).
		Where("space_id = ?", spaceID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.AuthorID != "" {
		tx = tx.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("title ILIKE ? OR reference ILIKE ?", like, like)
	}
	return tx
}

func (i impl) List(spaceID string, filter jobapimodels.JobFilter) (list []dbmodels.DesignJob, err error) {
	list = []dbmodels.DesignJob{}
	page, limit := filter.GetPage()
	err = i.listQuery(spaceID, filter).
		Preload("JobType").
		Preload("Author").
		Preload("Assignee").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
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

func (i impl) ListForExport(spaceID string, filter jobapimodels.JobFilter) (list []dbmodels.DesignJob, err error) {
	list = []dbmodels.DesignJob{}
	err = i.listQuery(spaceID, filter).
		Preload("JobType").
		Preload("Author").
		Preload("Assignee").
		Order("created_at desc").
		Find(&list).
		Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(spaceID string, filter jobapimodels.JobFilter) (rowCount int64, err error) {
	err = i.listQuery(spaceID, filter).Count(&rowCount).Error
	if err != nil {
		return 0, err
	}
	return rowCount, nil
}

// NextReference выдает следующий человекочитаемый номер задания в
// пространстве за год, вида JD-2026-0001
func (i impl) NextReference(spaceID string, year int) (string, error) {
	seq := dbmodels.JobSequence{SpaceID: spaceID, Year: year, Counter: 1}
	err := i.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "space_id"}, {Name: "year"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"counter": gorm.Expr("job_sequences.counter + 1")}),
	}).Create(&seq).Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка выдачи номера задания")
	}
	rec := dbmodels.JobSequence{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("year = ?", year).
		First(&rec).
		Error
	if err != nil {
		return "", errors.Wrap(err, "ошибка чтения счетчика номеров")
	}
	return fmt.Sprintf("JD-%v-%04d", year, rec.Counter), nil
}
