package rejectionworker

import (
	"context"
	"time"

	rejectionhandler "jd-portal-backend/lib/rejection-request"
	baseworker "jd-portal-backend/lib/utils/base-worker"
)

// Периодическое автозакрытие просроченных запросов на отказ
func StartWorker(ctx context.Context, runInterval time.Duration) {
	i := &impl{
		BaseImpl: *baseworker.NewInstance("RejectionAutoCloseWorker", 15*time.Second, runInterval),
	}
	go i.Run(ctx, i.handle)
}

type impl struct {
	baseworker.BaseImpl
}

func (i impl) handle(ctx context.Context) {
	rejectionhandler.Instance.Sweep(ctx)
}
