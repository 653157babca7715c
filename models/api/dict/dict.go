package dictapimodels

import (
	"jd-portal-backend/models"
	apimodels "jd-portal-backend/models/api"
	dbmodels "jd-portal-backend/models/db"
)

type JobTypeData struct {
	Name           string `json:"name"`
	SlaWorkingDays int    `json:"sla_working_days"` // срок в рабочих днях
}

func (r JobTypeData) Validate() error {
	if r.Name == "" {
		return models.NewValidationError("не указано название типа задания")
	}
	if r.SlaWorkingDays < 0 {
		return models.NewValidationError("SLA не может быть отрицательным")
	}
	return nil
}

type JobTypeView struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	SlaWorkingDays int    `json:"sla_working_days"`
}

func JobTypeConvert(rec dbmodels.JobType) JobTypeView {
	return JobTypeView{
		ID:             rec.ID,
		Name:           rec.Name,
		SlaWorkingDays: rec.SlaWorkingDays,
	}
}

type HolidayData struct {
	Date apimodels.Date `json:"date"`
	Name string         `json:"name"`
}

func (r HolidayData) Validate() error {
	if r.Date.IsZero() {
		return models.NewValidationError("не указана дата")
	}
	return nil
}

type HolidayView struct {
	ID   string         `json:"id"`
	Date apimodels.Date `json:"date"`
	Name string         `json:"name"`
}

func HolidayConvert(rec dbmodels.Holiday) HolidayView {
	return HolidayView{
		ID:   rec.ID,
		Date: apimodels.NewDate(rec.Date),
		Name: rec.Name,
	}
}

type ApprovalRouteLevelData struct {
	Ordinal     int                 `json:"ordinal"`
	Rule        models.ApprovalRule `json:"rule"`
	ApproverIDs []string            `json:"approver_ids"`
}

type ApprovalRouteData struct {
	Name              string                   `json:"name"`
	DefaultAssigneeID string                   `json:"default_assignee_id"`
	Levels            []ApprovalRouteLevelData `json:"levels"`
}

// Validate проверяет непрерывность ординалов с единицы и правила уровней.
// Пустой маршрут допустим — задание по нему согласуется автоматически.
func (r ApprovalRouteData) Validate() error {
	if r.Name == "" {
		return models.NewValidationError("не указано название маршрута")
	}
	for k, level := range r.Levels {
		if level.Ordinal != k+1 {
			return models.NewValidationError("уровни маршрута должны идти подряд с первого, уровень %v нарушает порядок", level.Ordinal)
		}
		if !level.Rule.IsValid() {
			return models.NewValidationError("неизвестное правило уровня %v: %v", level.Ordinal, level.Rule)
		}
		if len(level.ApproverIDs) == 0 {
			return models.NewValidationError("на уровне %v нет согласующих", level.Ordinal)
		}
	}
	return nil
}

type ApprovalRouteLevelView struct {
	Ordinal     int                 `json:"ordinal"`
	Rule        models.ApprovalRule `json:"rule"`
	ApproverIDs []string            `json:"approver_ids"`
}

type ApprovalRouteView struct {
	ID                string                   `json:"id"`
	Name              string                   `json:"name"`
	DefaultAssigneeID string                   `json:"default_assignee_id,omitempty"`
	Levels            []ApprovalRouteLevelView `json:"levels"`
}

func ApprovalRouteConvert(rec dbmodels.ApprovalRoute) ApprovalRouteView {
	result := ApprovalRouteView{
		ID:   rec.ID,
		Name: rec.Name,
	}
	if rec.DefaultAssigneeID != nil {
		result.DefaultAssigneeID = *rec.DefaultAssigneeID
	}
	levels := make([]ApprovalRouteLevelView, 0, len(rec.Levels))
	for _, level := range rec.Levels {
		levels = append(levels, ApprovalRouteLevelView{
			Ordinal:     level.Ordinal,
			Rule:        level.Rule,
			ApproverIDs: level.ApproverIDs,
		})
	}
	result.Levels = levels
	return result
}
