package approvalroutestore

import (
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Provider interface {
	Create(rec dbmodels.ApprovalRoute) (id string, err error)
	GetByID(spaceID, id string) (rec *dbmodels.ApprovalRoute, err error)
	SaveLevels(routeID string, levels []dbmodels.ApprovalRouteLevel) error
	Update(spaceID, id string, updMap map[string]interface{}) error
	Delete(spaceID, id string) error
	List(spaceID string) (list []dbmodels.ApprovalRoute, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApprovalRoute) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(spaceID, id string) (*dbmodels.ApprovalRoute, error) {
	rec := dbmodels.ApprovalRoute{}
	err := i.db.
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
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

func (i impl) SaveLevels(routeID string, levels []dbmodels.ApprovalRouteLevel) error {
	err := i.db.
		Where("route_id = ?", routeID).
		Delete(&dbmodels.ApprovalRouteLevel{}).
		Error
	if err != nil {
		return errors.Wrap(err, "ошибка очистки уровней маршрута")
	}
	for _, level := range levels {
		level.RouteID = routeID
		if err = i.db.Create(&level).Error; err != nil {
			return errors.Wrapf(err, "ошибка сохранения уровня маршрута, ordinal=%v", level.Ordinal)
		}
	}
	return nil
}

func (i impl) Update(spaceID, id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.ApprovalRoute{}).
		Where("id = ?", id).
		Where("space_id = ?", spaceID).
		Updates(updMap)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return errors.New("маршрут не найден")
	}
	return nil
}

func (i impl) Delete(spaceID, id string) error {
	rec := dbmodels.ApprovalRoute{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			BaseModel: dbmodels.BaseModel{ID: id},
			SpaceID:   spaceID,
		},
	}
	return i.db.Select("Levels").Delete(&rec).Error
}

func (i impl) List(spaceID string) (list []dbmodels.ApprovalRoute, err error) {
	list = []dbmodels.ApprovalRoute{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Preload("Levels", func(db *gorm.DB) *gorm.DB {
			return db.Order("ordinal")
		}).
		Order("name").
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
