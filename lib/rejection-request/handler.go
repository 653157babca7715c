package rejectionhandler

import (
	"context"
	"time"

	"jd-portal-backend/db"
	approvalchain "jd-portal-backend/lib/approval-chain"
	jobstore "jd-portal-backend/lib/job-flow/store"
	timelinestore "jd-portal-backend/lib/job-flow/timeline-store"
	notifyhandler "jd-portal-backend/lib/notify"
	rejectionstore "jd-portal-backend/lib/rejection-request/store"
	"jd-portal-backend/lib/utils/helpers"
	"jd-portal-backend/models"
	rejectionapimodels "jd-portal-backend/models/api/rejection"
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Субпроцесс отказа исполнителя от задания. Запрос живет рядом с заданием:
// пока он не закрыт, новый не создается; закрытие запроса согласующим либо
// отклоняет родительское задание, либо оставляет его как есть.

type Provider interface {
	Create(spaceID, jobID, userID string, data rejectionapimodels.RejectionRequestData) (id string, err error)
	Approve(spaceID, id, userID string, data rejectionapimodels.ResolveData) error
	Deny(spaceID, id, userID string, data rejectionapimodels.DenyData) error
	ListByJob(spaceID, jobID string) (list []rejectionapimodels.RejectionRequestView, err error)
	Sweep(ctx context.Context)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:         rejectionstore.NewInstance(db.DB),
		jobStore:      jobstore.NewInstance(db.DB),
		timelineStore: timelinestore.NewInstance(db.DB),
		notify:        notifyhandler.Instance,
	}
}

type impl struct {
	store         rejectionstore.Provider
	jobStore      jobstore.Provider
	timelineStore timelinestore.Provider
	notify        notifyhandler.Provider
}

func (i impl) getLogger(spaceID, id string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("rec_id", id)
}

// canResolve — закрыть запрос может согласующий из любого уровня снапшота.
// У задания без уровней (автосогласование) круга согласующих нет, за него
// запрос закрывает автор.
func canResolve(job dbmodels.DesignJob, userID string) bool {
	if len(job.Levels) == 0 {
		return job.AuthorID == userID
	}
	return approvalchain.IsEligibleAnyLevel(job.Levels, userID)
}

func (i impl) Create(spaceID, jobID, userID string, data rejectionapimodels.RejectionRequestData) (id string, err error) {
	logger := i.getLogger(spaceID, jobID)
	job, err := i.jobStore.GetByID(spaceID, jobID)
	if err != nil {
		return "", err
	}
	if job == nil {
		return "", errors.New("задание не найдено")
	}
	if !job.Status.AllowRejectionRequest() {
		return "", models.NewInvalidTransitionError(job.Status, models.JobActionRequestRejection)
	}
	if job.AssigneeID == nil || *job.AssigneeID != userID {
		return "", models.NewUnauthorizedActorError(userID, models.JobActionRequestRejection)
	}
	pending, err := i.store.GetPendingByJob(spaceID, jobID)
	if err != nil {
		return "", err
	}
	if pending != nil {
		return "", models.NewValidationError("по заданию уже есть незакрытый запрос на отказ")
	}
	rec := dbmodels.RejectionRequest{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		JobID:       jobID,
		Reason:      data.Reason,
		RequestedBy: userID,
		AutoCloseAt: data.AutoCloseAt,
		Resolution:  models.RejectionResolutionPending,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := rejectionstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		return i.audit(tlStore, *job, models.TimelineEventRejectionRequest, userID, data.Reason)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания запроса на отказ")
		return "", err
	}
	logger.WithField("requested_by", userID).Info("создан запрос на отказ от задания")
	return id, nil
}

// Approve — согласующий принимает отказ, родительское задание отклоняется
func (i impl) Approve(spaceID, id, userID string, data rejectionapimodels.ResolveData) error {
	logger := i.getLogger(spaceID, id)
	rec, job, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !canResolve(*job, userID) {
		return models.NewUnauthorizedActorError(userID, models.JobActionRequestRejection)
	}
	var rejected *dbmodels.DesignJob
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		rejected, err = i.approveTx(
			rejectionstore.NewInstance(tx),
			jobstore.NewInstance(tx),
			timelinestore.NewInstance(tx),
			*rec, userID, data.Comment)
		return err
	})
	if err != nil {
		logger.WithError(err).Error("ошибка принятия запроса на отказ")
		return err
	}
	logger.Info("запрос на отказ принят, задание отклонено")
	i.notify.JobEvent(models.TimelineEventRejected, *rejected, []string{rejected.AuthorID, rec.RequestedBy})
	return nil
}

// approveTx закрывает запрос и отклоняет задание в одной транзакции.
// Статус задания перечитывается внутри транзакции, запись статуса
// версионная: гонка с параллельным завершением задания откатывает и
// закрытие запроса.
func (i impl) approveTx(store rejectionstore.Provider, jStore jobstore.Provider, tlStore timelinestore.Provider,
	rec dbmodels.RejectionRequest, userID, comment string) (*dbmodels.DesignJob, error) {
	resolved, err := store.ResolveIfPending(rec.ID, models.RejectionResolutionApproved, userID, comment)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, models.NewValidationError("запрос на отказ уже закрыт")
	}
	job, err := jStore.GetByID(rec.SpaceID, rec.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("задание запроса не найдено")
	}
	if job.Status.IsTerminal() {
		return nil, models.NewValidationError("задание уже в конечном статусе")
	}
	err = jStore.UpdateVersioned(rec.SpaceID, job.ID, job.Version, map[string]interface{}{
		"status": models.JobStatusRejected,
	})
	if err != nil {
		return nil, err
	}
	if err = i.audit(tlStore, *job, models.TimelineEventRejected, userID, rec.Reason); err != nil {
		return nil, err
	}
	return job, nil
}

// Deny — согласующий отклоняет запрос, задание продолжается без изменений
func (i impl) Deny(spaceID, id, userID string, data rejectionapimodels.DenyData) error {
	logger := i.getLogger(spaceID, id)
	rec, job, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !canResolve(*job, userID) {
		return models.NewUnauthorizedActorError(userID, models.JobActionRequestRejection)
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := rejectionstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		resolved, err := store.ResolveIfPending(rec.ID, models.RejectionResolutionDenied, userID, data.Reason)
		if err != nil {
			return err
		}
		if !resolved {
			return models.NewValidationError("запрос на отказ уже закрыт")
		}
		return i.audit(tlStore, *job, models.TimelineEventRejectionDenied, userID, data.Reason)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отклонения запроса на отказ")
		return err
	}
	logger.Info("запрос на отказ отклонен")
	return nil
}

func (i impl) ListByJob(spaceID, jobID string) (list []rejectionapimodels.RejectionRequestView, err error) {
	recList, err := i.store.ListByJob(spaceID, jobID)
	if err != nil {
		return nil, err
	}
	result := make([]rejectionapimodels.RejectionRequestView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, rejectionapimodels.RejectionRequestConvert(rec))
	}
	return result, nil
}

// Sweep закрывает просроченные запросы за системного актора: молчание
// согласующих трактуется как согласие на отказ. Если задание к этому моменту
// уже в конечном статусе, запрос закрывается отказом с пометкой.
// Повторный проход по уже закрытому запросу безопасен.
func (i impl) Sweep(ctx context.Context) {
	logger := log.WithField("worker_name", "rejection_autoclose")
	list, err := i.store.ListExpired(time.Now())
	if err != nil {
		logger.WithError(err).Error("ошибка получения просроченных запросов на отказ")
		return
	}
	for _, rec := range list {
		if helpers.IsContextDone(ctx) {
			break
		}
		if err = i.sweepOne(rec); err != nil {
			logger.
				WithError(err).
				WithField("rec_id", rec.ID).
				Error("ошибка автозакрытия запроса на отказ")
		}
	}
}

func (i impl) sweepOne(rec dbmodels.RejectionRequest) error {
	var rejected *dbmodels.DesignJob
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		rejected, err = i.sweepTx(
			rejectionstore.NewInstance(tx),
			jobstore.NewInstance(tx),
			timelinestore.NewInstance(tx),
			rec)
		return err
	})
	if err != nil {
		return err
	}
	if rejected != nil {
		i.notify.JobEvent(models.TimelineEventRejected, *rejected, []string{rejected.AuthorID, rec.RequestedBy})
	}
	return nil
}

// sweepTx закрывает один просроченный запрос. Задание перечитывается внутри
// транзакции, а не берется из выборки: между выборкой и транзакцией оно
// могло успеть завершиться. Возвращает задание, если оно было отклонено и
// требует уведомления.
func (i impl) sweepTx(store rejectionstore.Provider, jStore jobstore.Provider, tlStore timelinestore.Provider,
	rec dbmodels.RejectionRequest) (*dbmodels.DesignJob, error) {
	logger := i.getLogger(rec.SpaceID, rec.ID)
	job, err := jStore.GetByID(rec.SpaceID, rec.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, errors.New("задание запроса не найдено")
	}
	if job.Status.IsTerminal() {
		resolved, err := store.ResolveIfPending(rec.ID, models.RejectionResolutionDenied, models.SystemActorID, "задание завершено до дедлайна автозакрытия")
		if err != nil {
			return nil, err
		}
		if resolved {
			logger.Info("запрос на отказ закрыт: задание уже завершено")
		}
		return nil, nil
	}
	resolved, err := store.ResolveIfPending(rec.ID, models.RejectionResolutionApproved, models.SystemActorID, "автозакрытие по дедлайну")
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, nil
	}
	err = jStore.UpdateVersioned(rec.SpaceID, job.ID, job.Version, map[string]interface{}{
		"status": models.JobStatusRejected,
	})
	if err != nil {
		return nil, err
	}
	if err = i.audit(tlStore, *job, models.TimelineEventRejected, models.SystemActorID, "отказ принят автоматически по дедлайну"); err != nil {
		return nil, err
	}
	logger.Info("запрос на отказ автозакрыт, задание отклонено")
	return job, nil
}

func (i impl) getRec(spaceID, id string) (*dbmodels.RejectionRequest, *dbmodels.DesignJob, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		return nil, nil, err
	}
	if rec == nil {
		return nil, nil, errors.New("запрос на отказ не найден")
	}
	job, err := i.jobStore.GetByID(spaceID, rec.JobID)
	if err != nil {
		return nil, nil, err
	}
	if job == nil {
		return nil, nil, errors.New("задание запроса не найдено")
	}
	return rec, job, nil
}

func (i impl) audit(tlStore timelinestore.Provider, job dbmodels.DesignJob, event models.TimelineEventType, actorID, note string) error {
	entry := dbmodels.TimelineEntry{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: job.SpaceID,
		},
		JobID:     job.ID,
		EventType: event,
		ActorID:   actorID,
		Note:      note,
	}
	_, err := tlStore.Create(entry)
	if err != nil {
		return errors.Wrap(err, "ошибка записи в ленту задания")
	}
	return nil
}
