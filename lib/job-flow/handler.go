package jobflowhandler

import (
	"bytes"
	"time"

	"jd-portal-backend/db"
	approvalchain "jd-portal-backend/lib/approval-chain"
	chainstore "jd-portal-backend/lib/approval-chain/store"
	approvalroutestore "jd-portal-backend/lib/approval-route/store"
	xlsexport "jd-portal-backend/lib/export/xls"
	holidayprovider "jd-portal-backend/lib/holiday"
	commentstore "jd-portal-backend/lib/job-flow/comment-store"
	jobstore "jd-portal-backend/lib/job-flow/store"
	timelinestore "jd-portal-backend/lib/job-flow/timeline-store"
	jobtypestore "jd-portal-backend/lib/job-type/store"
	notifyhandler "jd-portal-backend/lib/notify"
	"jd-portal-backend/lib/sla"
	"jd-portal-backend/lib/workcalendar"
	"jd-portal-backend/models"
	apimodels "jd-portal-backend/models/api"
	jobapimodels "jd-portal-backend/models/api/job"
	dbmodels "jd-portal-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Статусная модель дизайн-задания. Каждый метод применяет одно действие:
// проверяет таблицу переходов, права актора и версию записи, после чего
// фиксирует переход, запись ленты и расчет сроков одной транзакцией.

type Provider interface {
	Create(spaceID, userID string, data jobapimodels.JobCreateData) (id string, err error)
	Update(spaceID, id, userID string, data jobapimodels.JobEditData) error
	GetByID(spaceID, id string) (item jobapimodels.JobView, err error)
	List(spaceID string, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error)
	Export(spaceID string, filter jobapimodels.JobFilter) (*bytes.Buffer, error)
	DueDateWindow(spaceID, jobTypeID string, priority models.JobPriority) (jobapimodels.DueDateWindowView, error)

	Submit(spaceID, id, userID string, data jobapimodels.SubmitData) error
	Approve(spaceID, id, userID string, data jobapimodels.ApproveData) error
	Return(spaceID, id, userID string, data jobapimodels.ReasonData) error
	Reject(spaceID, id, userID string, data jobapimodels.ReasonData) error
	Assign(spaceID, id, userID string, data jobapimodels.AssignData) error
	Start(spaceID, id, userID string, data jobapimodels.ActionData) error
	RequestClose(spaceID, id, userID string, data jobapimodels.ActionData) error
	ConfirmClose(spaceID, id, userID string, data jobapimodels.ActionData) error
	RequestRevision(spaceID, id, userID string, data jobapimodels.RevisionData) error
	Revise(spaceID, id, userID string, data jobapimodels.RevisionData) error

	AddComment(spaceID, id, userID string, data jobapimodels.CommentData) error
	Comments(spaceID, id string) (list []jobapimodels.CommentView, err error)
	Timeline(spaceID, id string) (list []jobapimodels.TimelineView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           jobstore.NewInstance(db.DB),
		chainStore:      chainstore.NewInstance(db.DB),
		timelineStore:   timelinestore.NewInstance(db.DB),
		commentStore:    commentstore.NewInstance(db.DB),
		jobTypeStore:    jobtypestore.NewInstance(db.DB),
		routeStore:      approvalroutestore.NewInstance(db.DB),
		holidayProvider: holidayprovider.Instance,
		notify:          notifyhandler.Instance,
	}
}

type impl struct {
	store           jobstore.Provider
	chainStore      chainstore.Provider
	timelineStore   timelinestore.Provider
	commentStore    commentstore.Provider
	jobTypeStore    jobtypestore.Provider
	routeStore      approvalroutestore.Provider
	holidayProvider holidayprovider.Provider
	notify          notifyhandler.Provider
}

func (i impl) getLogger(spaceID, id string) *log.Entry {
	return log.
		WithField("space_id", spaceID).
		WithField("rec_id", id)
}

func (i impl) getRec(spaceID, id string) (*dbmodels.DesignJob, error) {
	rec, err := i.store.GetByID(spaceID, id)
	if err != nil {
		i.getLogger(spaceID, id).WithError(err).Error("ошибка получения задания")
		return nil, err
	}
	if rec == nil {
		return nil, errors.New("задание не найдено")
	}
	return rec, nil
}

// checkVersion сверяет версию записи с той, что видел клиент
func checkVersion(rec dbmodels.DesignJob, version int) error {
	if rec.Version != version {
		return models.NewConcurrentModificationError(version)
	}
	return nil
}

func (i impl) Create(spaceID, userID string, data jobapimodels.JobCreateData) (id string, err error) {
	logger := i.getLogger(spaceID, "")
	jobType, err := i.jobTypeStore.GetByID(spaceID, data.JobTypeID)
	if err != nil {
		return "", err
	}
	if jobType == nil {
		return "", models.NewConfigurationError("тип задания не найден")
	}
	if jobType.SlaWorkingDays < 0 {
		return "", models.NewConfigurationError("SLA типа задания отрицательный: %v", jobType.SlaWorkingDays)
	}
	if data.ApprovalRouteID != "" {
		route, err := i.routeStore.GetByID(spaceID, data.ApprovalRouteID)
		if err != nil {
			return "", err
		}
		if route == nil {
			return "", models.NewConfigurationError("маршрут согласования не найден")
		}
	}
	rec := dbmodels.DesignJob{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		AuthorID:    userID,
		JobTypeID:   data.JobTypeID,
		Title:       data.Title,
		Description: data.Description,
		Priority:    data.Priority,
		Status:      models.JobStatusDraft,
		Version:     1,
	}
	if data.ApprovalRouteID != "" {
		rec.ApprovalRouteID = &data.ApprovalRouteID
	}
	if data.DueDate != nil && !data.DueDate.IsZero() {
		due := workcalendar.Normalize(data.DueDate.Time)
		rec.DueDate = &due
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		rec.Reference, err = store.NextReference(spaceID, time.Now().Year())
		if err != nil {
			return err
		}
		id, err = store.Create(rec)
		return err
	})
	if err != nil {
		logger.WithError(err).Error("ошибка создания задания")
		return "", err
	}
	logger.
		WithField("rec_id", id).
		WithField("reference", rec.Reference).
		Info("создано задание")
	return id, nil
}

func (i impl) Update(spaceID, id, userID string, data jobapimodels.JobEditData) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !rec.Status.AllowEdit() {
		return models.NewInvalidTransitionError(rec.Status, "edit")
	}
	if rec.AuthorID != userID {
		return models.NewUnauthorizedActorError(userID, "edit")
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	jobType, err := i.jobTypeStore.GetByID(spaceID, data.JobTypeID)
	if err != nil {
		return err
	}
	if jobType == nil {
		return models.NewConfigurationError("тип задания не найден")
	}
	updMap := map[string]interface{}{
		"title":       data.Title,
		"description": data.Description,
		"job_type_id": data.JobTypeID,
		"priority":    data.Priority,
	}
	if data.ApprovalRouteID != "" {
		updMap["approval_route_id"] = data.ApprovalRouteID
	} else {
		updMap["approval_route_id"] = nil
	}
	// смена типа или приоритета до отправки сбрасывает выбранный срок
	if data.JobTypeID != rec.JobTypeID || data.Priority != rec.Priority {
		updMap["due_date"] = nil
		updMap["start_date"] = nil
	}
	if data.DueDate != nil && !data.DueDate.IsZero() {
		updMap["due_date"] = workcalendar.Normalize(data.DueDate.Time)
	}
	err = i.store.UpdateVersioned(spaceID, id, data.Version, updMap)
	if err != nil {
		logger.WithError(err).Error("ошибка обновления задания")
		return err
	}
	logger.Info("обновлено задание")
	return nil
}

func (i impl) GetByID(spaceID, id string) (jobapimodels.JobView, error) {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return jobapimodels.JobView{}, err
	}
	return jobapimodels.JobConvert(*rec), nil
}

func (i impl) List(spaceID string, filter jobapimodels.JobFilter) (list []jobapimodels.JobView, rowCount int64, err error) {
	logger := log.WithField("space_id", spaceID)
	rowCount, err = i.store.ListCount(spaceID, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	if int64(offset) > rowCount {
		return []jobapimodels.JobView{}, rowCount, nil
	}
	recList, err := i.store.List(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения списка заданий")
		return nil, 0, err
	}
	result := make([]jobapimodels.JobView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.JobConvert(rec))
	}
	return result, rowCount, nil
}

// Export — реестр заданий в xlsx под текущий фильтр
func (i impl) Export(spaceID string, filter jobapimodels.JobFilter) (*bytes.Buffer, error) {
	logger := log.WithField("space_id", spaceID)
	recList, err := i.store.ListForExport(spaceID, filter)
	if err != nil {
		logger.WithError(err).Error("ошибка получения заданий для выгрузки")
		return nil, err
	}
	return xlsexport.Instance.ExportJobList(recList)
}

// DueDateWindow — окно выбора срока для формы: срок по SLA и минимально
// допустимая дата
func (i impl) DueDateWindow(spaceID, jobTypeID string, priority models.JobPriority) (jobapimodels.DueDateWindowView, error) {
	jobType, err := i.jobTypeStore.GetByID(spaceID, jobTypeID)
	if err != nil {
		return jobapimodels.DueDateWindowView{}, err
	}
	if jobType == nil {
		return jobapimodels.DueDateWindowView{}, models.NewConfigurationError("тип задания не найден")
	}
	holidays, err := i.holidayProvider.HolidaySet(spaceID)
	if err != nil {
		return jobapimodels.DueDateWindowView{}, err
	}
	today := time.Now()
	minDate, err := sla.MinSelectableDueDate(today, jobType.SlaWorkingDays, priority, holidays)
	if err != nil {
		return jobapimodels.DueDateWindowView{}, err
	}
	result := jobapimodels.DueDateWindowView{
		MinSelectableDate: apimodels.NewDate(minDate),
	}
	if priority == models.JobPriorityUrgent {
		result.EarliestDue = apimodels.NewDate(minDate)
		return result, nil
	}
	earliest, err := sla.EarliestDue(today, jobType.SlaWorkingDays, holidays)
	if err != nil {
		return jobapimodels.DueDateWindowView{}, err
	}
	result.EarliestDue = apimodels.NewDate(earliest)
	return result, nil
}

// Submit отправляет задание на согласование. При первой отправке цепочка
// маршрута копируется в снапшот и вычисляются сроки; повторная отправка
// после возврата сохраняет снапшот и срок, но всегда начинает с первого
// уровня — частичные согласования не переживают возврат.
func (i impl) Submit(spaceID, id, userID string, data jobapimodels.SubmitData) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if _, err = rec.Status.NextStatus(models.JobActionSubmit); err != nil {
		return err
	}
	if rec.AuthorID != userID {
		return models.NewUnauthorizedActorError(userID, models.JobActionSubmit)
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	jobType, err := i.jobTypeStore.GetByID(spaceID, rec.JobTypeID)
	if err != nil {
		return err
	}
	if jobType == nil {
		return models.NewConfigurationError("тип задания не найден")
	}
	holidays, err := i.holidayProvider.HolidaySet(spaceID)
	if err != nil {
		return err
	}

	firstSubmit := rec.SubmittedAt == nil
	now := time.Now()

	// расчет сроков всегда предшествует переходу и блокирует его
	dueDate := rec.DueDate
	if firstSubmit {
		if data.DueDate != nil && !data.DueDate.IsZero() {
			chosen := workcalendar.Normalize(data.DueDate.Time)
			dueDate = &chosen
		}
		if dueDate == nil {
			minDate, err := sla.MinSelectableDueDate(now, jobType.SlaWorkingDays, rec.Priority, holidays)
			if err != nil {
				return err
			}
			dueDate = &minDate
		} else if err = sla.ValidateDueDate(*dueDate, now, jobType.SlaWorkingDays, rec.Priority, holidays); err != nil {
			return err
		}
	}
	if dueDate == nil {
		return models.NewConfigurationError("у задания не определен срок")
	}
	startDate, err := sla.StartDate(*dueDate, jobType.SlaWorkingDays, holidays)
	if err != nil {
		return err
	}

	var levels []dbmodels.JobApprovalLevel
	var defaultAssigneeID *string
	if firstSubmit {
		if rec.ApprovalRouteID != nil {
			route, err := i.routeStore.GetByID(spaceID, *rec.ApprovalRouteID)
			if err != nil {
				return err
			}
			if route == nil {
				return models.NewConfigurationError("маршрут согласования не найден")
			}
			levels = approvalchain.SnapshotFromRoute(id, *route)
			defaultAssigneeID = route.DefaultAssigneeID
		}
	} else {
		levels = rec.Levels
		defaultAssigneeID = rec.DefaultAssigneeID
	}

	status := models.JobStatusPendingApproval
	currentLevel := 1
	var assigneeID *string
	if approvalchain.IsFullySatisfied(levels, currentLevel) {
		// пустая цепочка — путь автосогласования
		status = models.JobStatusApproved
		if defaultAssigneeID != nil {
			status = models.JobStatusAssigned
			assigneeID = defaultAssigneeID
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		chStore := chainstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		if firstSubmit {
			if err := chStore.SaveSnapshot(id, levels); err != nil {
				return err
			}
		} else {
			if err := chStore.DeleteActions(id); err != nil {
				return err
			}
		}
		updMap := map[string]interface{}{
			"status":              status,
			"current_level":       currentLevel,
			"due_date":            *dueDate,
			"start_date":          startDate,
			"submitted_at":        now,
			"default_assignee_id": defaultAssigneeID,
		}
		if assigneeID != nil {
			updMap["assignee_id"] = *assigneeID
		}
		if err := store.UpdateVersioned(spaceID, id, data.Version, updMap); err != nil {
			return err
		}
		event := models.TimelineEventApprovalRequest
		note := ""
		if status != models.JobStatusPendingApproval {
			event = models.TimelineEventApproved
			note = "цепочка согласования пуста"
		}
		if err := i.audit(tlStore, *rec, event, userID, note); err != nil {
			return err
		}
		if status == models.JobStatusAssigned {
			return i.audit(tlStore, *rec, models.TimelineEventAssigned, userID, "")
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка отправки задания на согласование")
		return err
	}
	logger.WithField("new_status", status).Info("задание отправлено на согласование")

	switch status {
	case models.JobStatusPendingApproval:
		i.notify.JobEvent(models.TimelineEventApprovalRequest, *rec, levels[0].ApproverIDs)
	case models.JobStatusApproved:
		i.notify.JobEvent(models.TimelineEventApproved, *rec, []string{rec.AuthorID})
	case models.JobStatusAssigned:
		i.notify.JobEvent(models.TimelineEventAssigned, *rec, []string{*assigneeID})
	}
	return nil
}

// Approve фиксирует согласование актора на текущем уровне и продвигает
// цепочку, если уровень закрыт
func (i impl) Approve(spaceID, id, userID string, data jobapimodels.ApproveData) error {
	logger := i.getLogger(spaceID, id).WithField("user_id", userID)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if _, err = rec.Status.NextStatus(models.JobActionApprove); err != nil {
		return err
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	isLast, level := rec.GetCurrentApprovalLevel()
	if level == nil {
		return errors.Errorf("не найден уровень согласования %v", rec.CurrentLevel)
	}
	if !approvalchain.IsEligible(*level, userID) {
		return models.NewUnauthorizedActorError(userID, models.JobActionApprove)
	}
	actions := rec.ActionsAtCurrentLevel()
	if approvalchain.HasApproved(actions, userID) {
		return models.NewValidationError("вы уже согласовали задание на этом уровне")
	}

	action := dbmodels.JobLevelAction{
		JobID:    id,
		Level:    rec.CurrentLevel,
		ActorID:  userID,
		Decision: models.ApprovalDecisionApproved,
		Comment:  data.Comment,
	}
	satisfied := approvalchain.IsLevelSatisfied(*level, append(actions, action))

	status := rec.Status
	currentLevel := rec.CurrentLevel
	var assigneeID *string
	if satisfied {
		currentLevel++
		if isLast {
			status = models.JobStatusApproved
			if rec.DefaultAssigneeID != nil {
				status = models.JobStatusAssigned
				assigneeID = rec.DefaultAssigneeID
			}
		}
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		chStore := chainstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		if _, err := chStore.CreateAction(action); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"status":        status,
			"current_level": currentLevel,
		}
		if assigneeID != nil {
			updMap["assignee_id"] = *assigneeID
		}
		if err := store.UpdateVersioned(spaceID, id, data.Version, updMap); err != nil {
			return err
		}
		if satisfied && isLast {
			if err := i.audit(tlStore, *rec, models.TimelineEventApproved, userID, data.Comment); err != nil {
				return err
			}
			if assigneeID != nil {
				return i.audit(tlStore, *rec, models.TimelineEventAssigned, userID, "")
			}
			return nil
		}
		if satisfied {
			return i.audit(tlStore, *rec, models.TimelineEventApprovalRequest, userID, "уровень согласован")
		}
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("ошибка согласования задания")
		return err
	}
	logger.
		WithField("level", rec.CurrentLevel).
		WithField("level_satisfied", satisfied).
		Info("согласование зафиксировано")

	if satisfied && isLast {
		i.notify.JobEvent(models.TimelineEventApproved, *rec, []string{rec.AuthorID})
		if assigneeID != nil {
			i.notify.JobEvent(models.TimelineEventAssigned, *rec, []string{*assigneeID})
		}
	} else if satisfied {
		_, next := dbmodels.DesignJob{Levels: rec.Levels, CurrentLevel: currentLevel}.GetCurrentApprovalLevel()
		if next != nil {
			i.notify.JobEvent(models.TimelineEventApprovalRequest, *rec, next.ApproverIDs)
		}
	}
	return nil
}

// Return возвращает задание автору на доработку: указатель уровня
// сбрасывается, записанные согласования удаляются
func (i impl) Return(spaceID, id, userID string, data jobapimodels.ReasonData) error {
	return i.decline(spaceID, id, userID, data, models.JobActionReturn)
}

// Reject окончательно отклоняет задание
func (i impl) Reject(spaceID, id, userID string, data jobapimodels.ReasonData) error {
	return i.decline(spaceID, id, userID, data, models.JobActionReject)
}

// общий путь возврата/отказа: единственное решение любого участника уровня
// срезает уровень, не дожидаясь остальных
func (i impl) decline(spaceID, id, userID string, data jobapimodels.ReasonData, action models.JobAction) error {
	logger := i.getLogger(spaceID, id).WithField("user_id", userID)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	newStatus, err := rec.Status.NextStatus(action)
	if err != nil {
		return err
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	_, level := rec.GetCurrentApprovalLevel()
	if level == nil {
		return errors.Errorf("не найден уровень согласования %v", rec.CurrentLevel)
	}
	if !approvalchain.IsEligible(*level, userID) {
		return models.NewUnauthorizedActorError(userID, action)
	}

	event := models.TimelineEventReturned
	currentLevel := 0
	if action == models.JobActionReject {
		event = models.TimelineEventRejected
		currentLevel = rec.CurrentLevel
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		chStore := chainstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		if action == models.JobActionReturn {
			if err := chStore.DeleteActions(id); err != nil {
				return err
			}
		}
		updMap := map[string]interface{}{
			"status":        newStatus,
			"current_level": currentLevel,
		}
		if err := store.UpdateVersioned(spaceID, id, data.Version, updMap); err != nil {
			return err
		}
		return i.audit(tlStore, *rec, event, userID, data.Reason)
	})
	if err != nil {
		logger.WithError(err).Error("ошибка возврата/отказа по заданию")
		return err
	}
	logger.WithField("new_status", newStatus).Info("решение по заданию зафиксировано")
	if action == models.JobActionReject {
		i.notify.JobEvent(models.TimelineEventRejected, *rec, []string{rec.AuthorID})
	}
	return nil
}

func (i impl) Assign(spaceID, id, userID string, data jobapimodels.AssignData) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	newStatus, err := rec.Status.NextStatus(models.JobActionAssign)
	if err != nil {
		return err
	}
	if rec.AuthorID != userID {
		return models.NewUnauthorizedActorError(userID, models.JobActionAssign)
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		updMap := map[string]interface{}{
			"status":      newStatus,
			"assignee_id": data.AssigneeID,
		}
		if err := store.UpdateVersioned(spaceID, id, data.Version, updMap); err != nil {
			return err
		}
		return i.audit(tlStore, *rec, models.TimelineEventAssigned, userID, "")
	})
	if err != nil {
		logger.WithError(err).Error("ошибка назначения исполнителя")
		return err
	}
	logger.WithField("assignee_id", data.AssigneeID).Info("назначен исполнитель")
	i.notify.JobEvent(models.TimelineEventAssigned, *rec, []string{data.AssigneeID})
	return nil
}

func (i impl) Start(spaceID, id, userID string, data jobapimodels.ActionData) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	newStatus, err := rec.Status.NextStatus(models.JobActionStart)
	if err != nil {
		return err
	}
	if rec.AssigneeID == nil || *rec.AssigneeID != userID {
		return models.NewUnauthorizedActorError(userID, models.JobActionStart)
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	updMap := map[string]interface{}{
		"status": newStatus,
	}
	if rec.StartedAt == nil {
		updMap["started_at"] = time.Now()
	}
	return i.applyTransition(spaceID, id, userID, data.Version, updMap, *rec, models.TimelineEventStarted, "")
}

func (i impl) RequestClose(spaceID, id, userID string, data jobapimodels.ActionData) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	newStatus, err := rec.Status.NextStatus(models.JobActionRequestClose)
	if err != nil {
		return err
	}
	if rec.AssigneeID == nil || *rec.AssigneeID != userID {
		return models.NewUnauthorizedActorError(userID, models.JobActionRequestClose)
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	updMap := map[string]interface{}{"status": newStatus}
	return i.applyTransition(spaceID, id, userID, data.Version, updMap, *rec, models.TimelineEventCloseRequested, "")
}

func (i impl) ConfirmClose(spaceID, id, userID string, data jobapimodels.ActionData) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	newStatus, err := rec.Status.NextStatus(models.JobActionConfirmClose)
	if err != nil {
		return err
	}
	if rec.AuthorID != userID {
		return models.NewUnauthorizedActorError(userID, models.JobActionConfirmClose)
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	updMap := map[string]interface{}{"status": newStatus}
	return i.applyTransition(spaceID, id, userID, data.Version, updMap, *rec, models.TimelineEventClosed, "")
}

func (i impl) RequestRevision(spaceID, id, userID string, data jobapimodels.RevisionData) error {
	return i.revision(spaceID, id, userID, data, models.JobActionRequestRevision)
}

// Revise отправляет задание на доработку прямо из работы
func (i impl) Revise(spaceID, id, userID string, data jobapimodels.RevisionData) error {
	return i.revision(spaceID, id, userID, data, models.JobActionRevise)
}

func (i impl) revision(spaceID, id, userID string, data jobapimodels.RevisionData, action models.JobAction) error {
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	newStatus, err := rec.Status.NextStatus(action)
	if err != nil {
		return err
	}
	if rec.AuthorID != userID {
		return models.NewUnauthorizedActorError(userID, action)
	}
	if err = checkVersion(*rec, data.Version); err != nil {
		return err
	}
	updMap := map[string]interface{}{"status": newStatus}
	return i.applyTransition(spaceID, id, userID, data.Version, updMap, *rec, models.TimelineEventRevisionRequested, data.Note)
}

// applyTransition — общий хвост простых переходов: обновление записи и
// запись ленты одной транзакцией
func (i impl) applyTransition(spaceID, id, userID string, version int, updMap map[string]interface{}, rec dbmodels.DesignJob, event models.TimelineEventType, note string) error {
	logger := i.getLogger(spaceID, id)
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := jobstore.NewInstance(tx)
		tlStore := timelinestore.NewInstance(tx)
		if err := store.UpdateVersioned(spaceID, id, version, updMap); err != nil {
			return err
		}
		return i.audit(tlStore, rec, event, userID, note)
	})
	if err != nil {
		logger.WithError(err).WithField("event_type", event).Error("ошибка перехода по заданию")
		return err
	}
	logger.WithField("event_type", event).Info("переход по заданию выполнен")
	return nil
}

func (i impl) AddComment(spaceID, id, userID string, data jobapimodels.CommentData) error {
	logger := i.getLogger(spaceID, id)
	rec, err := i.getRec(spaceID, id)
	if err != nil {
		return err
	}
	if !rec.Status.AllowComment() {
		return models.NewInvalidTransitionError(rec.Status, models.JobActionComment)
	}
	comment := dbmodels.JobComment{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: spaceID,
		},
		JobID:    id,
		AuthorID: userID,
		Comment:  data.Comment,
	}
	// комментарий не двигает статус и не трогает версию записи
	_, err = i.commentStore.Create(comment)
	if err != nil {
		logger.WithError(err).Error("ошибка добавления комментария")
		return err
	}
	return nil
}

func (i impl) Comments(spaceID, id string) (list []jobapimodels.CommentView, err error) {
	recList, err := i.commentStore.List(spaceID, id)
	if err != nil {
		return nil, err
	}
	result := make([]jobapimodels.CommentView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.CommentConvert(rec))
	}
	return result, nil
}

func (i impl) Timeline(spaceID, id string) (list []jobapimodels.TimelineView, err error) {
	recList, err := i.timelineStore.List(spaceID, id)
	if err != nil {
		return nil, err
	}
	result := make([]jobapimodels.TimelineView, 0, len(recList))
	for _, rec := range recList {
		result = append(result, jobapimodels.TimelineConvert(rec))
	}
	return result, nil
}

func (i impl) audit(tlStore timelinestore.Provider, rec dbmodels.DesignJob, event models.TimelineEventType, actorID, note string) error {
	entry := dbmodels.TimelineEntry{
		BaseSpaceModel: dbmodels.BaseSpaceModel{
			SpaceID: rec.SpaceID,
		},
		JobID:     rec.ID,
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
