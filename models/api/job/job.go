package jobapimodels

import (
	"time"

	"jd-portal-backend/models"
	apimodels "jd-portal-backend/models/api"
	dbmodels "jd-portal-backend/models/db"
)

type JobData struct {
	Title           string             `json:"title"`            // Название задания
	Description     string             `json:"description"`      // Описание/бриф
	JobTypeID       string             `json:"job_type_id"`      // Тип задания (несет SLA)
	Priority        models.JobPriority `json:"priority"`         // normal/urgent
	ApprovalRouteID string             `json:"approval_route_id"` // Маршрут согласования
	DueDate         *apimodels.Date    `json:"due_date"`         // Выбранный срок, не раньше минимального
}

func (r JobData) Validate() error {
	if r.Title == "" {
		return models.NewValidationError("не указано название задания")
	}
	if r.JobTypeID == "" {
		return models.NewValidationError("не указан тип задания")
	}
	if !r.Priority.IsValid() {
		return models.NewValidationError("неизвестный приоритет: %v", r.Priority)
	}
	return nil
}

type JobCreateData struct {
	JobData
}

type JobEditData struct {
	JobData
	Version int `json:"version"`
}

// ActionData — общая форма действия над заданием с проверкой версии
type ActionData struct {
	Version int `json:"version"`
}

type SubmitData struct {
	Version int             `json:"version"`
	DueDate *apimodels.Date `json:"due_date"` // если не задан, берется минимально допустимый
}

type ApproveData struct {
	Version int    `json:"version"`
	Comment string `json:"comment"`
}

type ReasonData struct {
	Version int    `json:"version"`
	Reason  string `json:"reason"`
}

func (r ReasonData) Validate() error {
	if r.Reason == "" {
		return models.NewValidationError("не указана причина")
	}
	return nil
}

type AssignData struct {
	Version    int    `json:"version"`
	AssigneeID string `json:"assignee_id"`
}

func (r AssignData) Validate() error {
	if r.AssigneeID == "" {
		return models.NewValidationError("не указан исполнитель")
	}
	return nil
}

type RevisionData struct {
	Version int    `json:"version"`
	Note    string `json:"note"`
}

func (r RevisionData) Validate() error {
	if r.Note == "" {
		return models.NewValidationError("не указан комментарий к доработке")
	}
	return nil
}

type CommentData struct {
	Comment string `json:"comment"`
}

func (r CommentData) Validate() error {
	if r.Comment == "" {
		return models.NewValidationError("пустой комментарий")
	}
	return nil
}

type JobFilter struct {
	apimodels.Pagination
	Status   models.JobStatus `json:"status"`   // фильтр по статусу
	Search   string           `json:"search"`   // по названию/номеру
	AuthorID string           `json:"author_id"`
}

// Окно выбора срока для формы создания задания
type DueDateWindowView struct {
	EarliestDue       apimodels.Date `json:"earliest_due"`        // срок по SLA
	MinSelectableDate apimodels.Date `json:"min_selectable_date"` // минимально допустимый к выбору
}

type ApprovalLevelView struct {
	Ordinal     int                 `json:"ordinal"`
	Rule        models.ApprovalRule `json:"rule"`
	ApproverIDs []string            `json:"approver_ids"`
	IsCurrent   bool                `json:"is_current"`
}

type JobView struct {
	ID           string             `json:"id"`
	Reference    string             `json:"reference"`
	Title        string             `json:"title"`
	Description  string             `json:"description"`
	JobTypeID    string             `json:"job_type_id"`
	JobTypeName  string             `json:"job_type_name"`
	Priority     models.JobPriority `json:"priority"`
	Status       models.JobStatus   `json:"status"`
	StatusDesc   string             `json:"status_desc"`
	AuthorID     string             `json:"author_id"`
	AuthorName   string             `json:"author_name"`
	AssigneeID   string             `json:"assignee_id,omitempty"`
	AssigneeName string             `json:"assignee_name,omitempty"`
	CurrentLevel int                `json:"current_level"`
	Levels       []ApprovalLevelView `json:"levels,omitempty"`
	DueDate      *apimodels.Date    `json:"due_date,omitempty"`
	StartDate    *apimodels.Date    `json:"start_date,omitempty"`
	Version      int                `json:"version"`
	CreationDate time.Time          `json:"creation_date"`
}

func JobConvert(rec dbmodels.DesignJob) JobView {
	result := JobView{
		ID:           rec.ID,
		Reference:    rec.Reference,
		Title:        rec.Title,
		Description:  rec.Description,
		JobTypeID:    rec.JobTypeID,
		Priority:     rec.Priority,
		Status:       rec.Status,
		StatusDesc:   rec.Status.GetDesc(),
		AuthorID:     rec.AuthorID,
		CurrentLevel: rec.CurrentLevel,
		Version:      rec.Version,
		CreationDate: rec.CreatedAt,
	}
	if rec.JobType != nil {
		result.JobTypeName = rec.JobType.Name
	}
	if rec.Author != nil {
		result.AuthorName = rec.Author.GetFullName()
	}
	if rec.AssigneeID != nil {
		result.AssigneeID = *rec.AssigneeID
	}
	if rec.Assignee != nil {
		result.AssigneeName = rec.Assignee.GetFullName()
	}
	if rec.DueDate != nil {
		due := apimodels.NewDate(*rec.DueDate)
		result.DueDate = &due
	}
	if rec.StartDate != nil {
		start := apimodels.NewDate(*rec.StartDate)
		result.StartDate = &start
	}
	levels := make([]ApprovalLevelView, 0, len(rec.Levels))
	for _, level := range rec.Levels {
		levels = append(levels, ApprovalLevelView{
			Ordinal:     level.Ordinal,
			Rule:        level.Rule,
			ApproverIDs: level.ApproverIDs,
			IsCurrent:   level.Ordinal == rec.CurrentLevel,
		})
	}
	result.Levels = levels
	return result
}

type TimelineView struct {
	ID        string                   `json:"id"`
	EventType models.TimelineEventType `json:"event_type"`
	ActorID   string                   `json:"actor_id"`
	ActorName string                   `json:"actor_name"`
	Note      string                   `json:"note,omitempty"`
	Date      time.Time                `json:"date"`
}

func TimelineConvert(rec dbmodels.TimelineEntry) TimelineView {
	result := TimelineView{
		ID:        rec.ID,
		EventType: rec.EventType,
		ActorID:   rec.ActorID,
		Note:      rec.Note,
		Date:      rec.CreatedAt,
	}
	if rec.Actor != nil {
		result.ActorName = rec.Actor.GetFullName()
	}
	return result
}

type CommentView struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"author_id"`
	AuthorName string    `json:"author_name"`
	Comment    string    `json:"comment"`
	Date       time.Time `json:"date"`
}

func CommentConvert(rec dbmodels.JobComment) CommentView {
	result := CommentView{
		ID:       rec.ID,
		AuthorID: rec.AuthorID,
		Comment:  rec.Comment,
		Date:     rec.CreatedAt,
	}
	if rec.Author != nil {
		result.AuthorName = rec.Author.GetFullName()
	}
	return result
}
