package initializers

import (
	"context"
	"time"

	"jd-portal-backend/config"
	"jd-portal-backend/fiberlog"
	approvalroutehandler "jd-portal-backend/lib/approval-route"
	authhandler "jd-portal-backend/lib/auth"
	xlsexport "jd-portal-backend/lib/export/xls"
	holidayprovider "jd-portal-backend/lib/holiday"
	jobflowhandler "jd-portal-backend/lib/job-flow"
	jobtypeprovider "jd-portal-backend/lib/job-type"
	notifyhandler "jd-portal-backend/lib/notify"
	portaluserhandler "jd-portal-backend/lib/portal-users"
	rejectionhandler "jd-portal-backend/lib/rejection-request"
	rejectionworker "jd-portal-backend/lib/rejection-request/worker"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitSmtp()
	authhandler.NewHandler()
	portaluserhandler.NewHandler()
	jobtypeprovider.NewHandler()
	holidayprovider.NewHandler()
	approvalroutehandler.NewHandler()
	notifyhandler.NewHandler()
	xlsexport.NewHandler()
	jobflowhandler.NewHandler()
	rejectionhandler.NewHandler()
	go initWorkers(ctx)
}

func initWorkers(ctx context.Context) {
	// Задача автозакрытия просроченных запросов на отказ
	interval := time.Duration(config.Conf.Workers.RejectionAutoCloseMinutes) * time.Minute
	rejectionworker.StartWorker(ctx, interval)
}
