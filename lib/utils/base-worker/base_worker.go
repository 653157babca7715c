package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

// Каркас периодической фоновой задачи портала: первый запуск с задержкой,
// дальше по интервалу, остановка по контексту.
type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(WorkerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    WorkerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.
		WithField("worker_name", i.WorkerName).
		WithField("run_interval", i.runInterval.String())
}

func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	logger := i.GetLogger()
	defer func() {
		if r := recover(); r != nil {
			logger.
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	period := i.firstRunDelay
	for {
		select {
		case <-ctx.Done():
			logger.Info("фоновая задача остановлена")
			return
		case <-time.After(period):
			logger.Info("фоновая задача запущена")
			jobFunc(ctx)
			logger.Info("фоновая задача выполнена")
		}
		period = i.runInterval
	}
}
