package models

type JobPriority string

const (
	JobPriorityNormal JobPriority = "normal"
	JobPriorityUrgent JobPriority = "urgent"
)

func (p JobPriority) IsValid() bool {
	return p == JobPriorityNormal || p == JobPriorityUrgent
}

func (p JobPriority) GetDesc() string {
	switch p {
	case JobPriorityNormal:
		return "обычный"
	case JobPriorityUrgent:
		return "срочный"
	}
	return string(p)
}

type JobStatus string

const (
	JobStatusDraft           JobStatus = "draft"
	JobStatusPendingApproval JobStatus = "pending_approval"
	JobStatusReturned        JobStatus = "returned"
	JobStatusRejected        JobStatus = "rejected"
	JobStatusApproved        JobStatus = "approved"
	JobStatusAssigned        JobStatus = "assigned"
	JobStatusInProgress      JobStatus = "in_progress"
	JobStatusRework          JobStatus = "rework"
	JobStatusPendingClose    JobStatus = "pending_close"
	JobStatusClosed          JobStatus = "closed"
)

func (s JobStatus) GetDesc() string {
	switch s {
	case JobStatusDraft:
		return "черновик"
	case JobStatusPendingApproval:
		return "на согласовании"
	case JobStatusReturned:
		return "возвращена"
	case JobStatusRejected:
		return "отклонена"
	case JobStatusApproved:
		return "согласована"
	case JobStatusAssigned:
		return "назначена"
	case JobStatusInProgress:
		return "в работе"
	case JobStatusRework:
		return "на доработке"
	case JobStatusPendingClose:
		return "ожидает подтверждения закрытия"
	case JobStatusClosed:
		return "закрыта"
	}
	return string(s)
}

func (s JobStatus) IsTerminal() bool {
	return s == JobStatusRejected || s == JobStatusClosed
}

// комментарии допустимы в любом нетерминальном статусе
func (s JobStatus) AllowComment() bool {
	return !s.IsTerminal()
}

// запрос на отказ от задания создается только по активному заданию
func (s JobStatus) AllowRejectionRequest() bool {
	return s == JobStatusInProgress || s == JobStatusApproved
}

// редактирование данных задания возможно до отправки на согласование
func (s JobStatus) AllowEdit() bool {
	return s == JobStatusDraft || s == JobStatusReturned
}

type JobAction string

const (
	JobActionSubmit          JobAction = "submit"
	JobActionApprove         JobAction = "approve"
	JobActionReturn          JobAction = "return"
	JobActionReject          JobAction = "reject"
	JobActionAssign          JobAction = "assign"
	JobActionStart           JobAction = "start"
	JobActionRequestClose    JobAction = "request_close"
	JobActionConfirmClose    JobAction = "confirm_close"
	JobActionRequestRevision JobAction = "request_revision"
	JobActionRevise          JobAction = "revise"

	// не двигают статус, но проверяются против него
	JobActionComment          JobAction = "comment"
	JobActionRequestRejection JobAction = "request_rejection"
)

// Таблица переходов статусной модели задания. Для approve указан базовый
// переход (остаемся на согласовании), продвижение по цепочке решает
// lib/approval-chain.
var jobTransitions = map[JobStatus]map[JobAction]JobStatus{
	JobStatusDraft: {
		JobActionSubmit: JobStatusPendingApproval,
	},
	JobStatusPendingApproval: {
		JobActionApprove: JobStatusPendingApproval,
		JobActionReturn:  JobStatusReturned,
		JobActionReject:  JobStatusRejected,
	},
	JobStatusReturned: {
		JobActionSubmit: JobStatusPendingApproval,
	},
	JobStatusApproved: {
		JobActionAssign: JobStatusAssigned,
		JobActionStart:  JobStatusInProgress,
	},
	JobStatusAssigned: {
		JobActionStart: JobStatusInProgress,
	},
	JobStatusInProgress: {
		JobActionRequestClose: JobStatusPendingClose,
		JobActionRevise:       JobStatusRework,
	},
	JobStatusRework: {
		JobActionStart: JobStatusInProgress,
	},
	JobStatusPendingClose: {
		JobActionConfirmClose:    JobStatusClosed,
		JobActionRequestRevision: JobStatusInProgress,
	},
}

// NextStatus возвращает целевой статус для действия из таблицы переходов.
// Недопустимая пара (статус, действие) — InvalidTransitionError.
func (s JobStatus) NextStatus(action JobAction) (JobStatus, error) {
	actions, ok := jobTransitions[s]
	if ok {
		next, ok := actions[action]
		if ok {
			return next, nil
		}
	}
	return "", NewInvalidTransitionError(s, action)
}
