package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "jd-portal-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	structures := []interface{}{
		&dbmodels.Space{},
		&dbmodels.PortalUser{},
		&dbmodels.JobType{},
		&dbmodels.Holiday{},
		&dbmodels.ApprovalRoute{},
		&dbmodels.ApprovalRouteLevel{},
		&dbmodels.DesignJob{},
		&dbmodels.JobApprovalLevel{},
		&dbmodels.JobLevelAction{},
		&dbmodels.JobComment{},
		&dbmodels.JobSequence{},
		&dbmodels.TimelineEntry{},
		&dbmodels.RejectionRequest{},
	}
	for _, structure := range structures {
		if err := DB.AutoMigrate(structure); err != nil {
			return errors.Wrapf(err, "ошибка миграции структуры %T", structure)
		}
	}
	log.Info("Миграция прошла успешно")
	return nil
}
