package rejectionapimodels

import (
	"time"

	"jd-portal-backend/models"
	dbmodels "jd-portal-backend/models/db"
)

type RejectionRequestData struct {
	Reason      string     `json:"reason"`        // Причина отказа, обязательна
	AutoCloseAt *time.Time `json:"auto_close_at"` // Дедлайн автозакрытия, опционален
}

// Дедлайн автозакрытия может быть и в прошлом: такой запрос закроется
// на ближайшем проходе воркера.
func (r RejectionRequestData) Validate() error {
	if r.Reason == "" {
		return models.NewValidationError("не указана причина отказа")
	}
	return nil
}

type ResolveData struct {
	Comment string `json:"comment"`
}

type DenyData struct {
	Reason string `json:"reason"`
}

func (r DenyData) Validate() error {
	if r.Reason == "" {
		return models.NewValidationError("не указана причина отклонения запроса")
	}
	return nil
}

type RejectionRequestView struct {
	ID             string                     `json:"id"`
	JobID          string                     `json:"job_id"`
	JobReference   string                     `json:"job_reference,omitempty"`
	Reason         string                     `json:"reason"`
	RequestedBy    string                     `json:"requested_by"`
	RequesterName  string                     `json:"requester_name,omitempty"`
	AutoCloseAt    *time.Time                 `json:"auto_close_at,omitempty"`
	Resolution     models.RejectionResolution `json:"resolution"`
	ResolvedBy     string                     `json:"resolved_by,omitempty"`
	ResolvedAt     *time.Time                 `json:"resolved_at,omitempty"`
	ResolutionNote string                     `json:"resolution_note,omitempty"`
	CreationDate   time.Time                  `json:"creation_date"`
}

func RejectionRequestConvert(rec dbmodels.RejectionRequest) RejectionRequestView {
	result := RejectionRequestView{
		ID:             rec.ID,
		JobID:          rec.JobID,
		Reason:         rec.Reason,
		RequestedBy:    rec.RequestedBy,
		AutoCloseAt:    rec.AutoCloseAt,
		Resolution:     rec.Resolution,
		ResolvedAt:     rec.ResolvedAt,
		ResolutionNote: rec.ResolutionNote,
		CreationDate:   rec.CreatedAt,
	}
	if rec.Job != nil {
		result.JobReference = rec.Job.Reference
	}
	if rec.Requester != nil {
		result.RequesterName = rec.Requester.GetFullName()
	}
	if rec.ResolvedBy != nil {
		result.ResolvedBy = *rec.ResolvedBy
	}
	return result
}
