package portaluserstore

import (
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.PortalUser) (id string, err error)
	GetByID(id string) (rec *dbmodels.PortalUser, err error)
	GetByEmail(email string) (rec *dbmodels.PortalUser, err error)
	ListByIDs(ids []string) (list []dbmodels.PortalUser, err error)
	List(spaceID string) (list []dbmodels.PortalUser, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.PortalUser) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.PortalUser, error) {
	rec := dbmodels.PortalUser{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) GetByEmail(email string) (*dbmodels.PortalUser, error) {
	rec := dbmodels.PortalUser{}
	err := i.db.
		Where("email = ?", email).
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

func (i impl) ListByIDs(ids []string) (list []dbmodels.PortalUser, err error) {
	list = []dbmodels.PortalUser{}
	if len(ids) == 0 {
		return list, nil
	}
	err = i.db.
		Where("id IN ?", ids).
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

func (i impl) List(spaceID string) (list []dbmodels.PortalUser, err error) {
	list = []dbmodels.PortalUser{}
	err = i.db.
		Where("space_id = ?", spaceID).
		Where("is_active = true").
		Order("last_name, first_name").
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
