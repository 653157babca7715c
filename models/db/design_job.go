package dbmodels

import (
	"time"

	"jd-portal-backend/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Дизайн-задание — единица работы портала.
// Version — счетчик оптимистической блокировки: каждое действие движка
// проверяет и инкрементирует его, устаревшая версия отклоняется.
type DesignJob struct {
	BaseSpaceModel
	Reference   string `gorm:"type:varchar(36);index"`
	AuthorID    string `gorm:"type:varchar(36)"`
	Author      *PortalUser `gorm:"foreignKey:AuthorID"`
	JobTypeID   string      `gorm:"type:varchar(36)"`
	JobType     *JobType
	Title       string `gorm:"type:varchar(255)"`
	Description string
	Priority    models.JobPriority `gorm:"type:varchar(50)"`
	Status      models.JobStatus   `gorm:"type:varchar(50);index"`

	// выбранный при создании маршрут; снапшот уровней живет в Levels
	ApprovalRouteID   *string `gorm:"type:varchar(36)"`
	CurrentLevel      int
	DefaultAssigneeID *string `gorm:"type:varchar(36)"`

	AssigneeID *string     `gorm:"type:varchar(36)"`
	Assignee   *PortalUser `gorm:"foreignKey:AssigneeID"`

	DueDate     *time.Time `gorm:"type:date"`
	StartDate   *time.Time `gorm:"type:date"`
	StartedAt   *time.Time
	SubmittedAt *time.Time

	Version int `gorm:"default:1"`

	Levels            []JobApprovalLevel `gorm:"foreignKey:JobID"`
	LevelActions      []JobLevelAction   `gorm:"foreignKey:JobID"`
	Timeline          []TimelineEntry    `gorm:"foreignKey:JobID"`
	Comments          []JobComment       `gorm:"foreignKey:JobID"`
	RejectionRequests []RejectionRequest `gorm:"foreignKey:JobID"`
}

func (j *DesignJob) AfterDelete(tx *gorm.DB) (err error) {
	if j.ID == "" {
		return nil
	}
	tx.Clauses(clause.Returning{}).Where("job_id = ?", j.ID).Delete(&JobApprovalLevel{})
	tx.Clauses(clause.Returning{}).Where("job_id = ?", j.ID).Delete(&JobLevelAction{})
	return
}

// GetCurrentApprovalLevel возвращает уровень, на котором стоит согласование,
// и признак того, что это последний уровень снапшота. nil — задание вне
// согласования либо цепочка пуста.
func (j DesignJob) GetCurrentApprovalLevel() (isLast bool, level *JobApprovalLevel) {
	for k := range j.Levels {
		if j.Levels[k].Ordinal == j.CurrentLevel {
			return j.Levels[k].Ordinal == len(j.Levels), &j.Levels[k]
		}
	}
	return false, nil
}

// ActionsAtCurrentLevel — решения, записанные на текущем уровне
func (j DesignJob) ActionsAtCurrentLevel() []JobLevelAction {
	result := make([]JobLevelAction, 0, len(j.LevelActions))
	for _, action := range j.LevelActions {
		if action.Level == j.CurrentLevel {
			result = append(result, action)
		}
	}
	return result
}

// PendingRejectionRequest — незакрытый запрос на отказ, если есть
func (j DesignJob) PendingRejectionRequest() *RejectionRequest {
	for k := range j.RejectionRequests {
		if j.RejectionRequests[k].Resolution == models.RejectionResolutionPending {
			return &j.RejectionRequests[k]
		}
	}
	return nil
}

// Снапшот уровня согласования, скопированный из маршрута при отправке
type JobApprovalLevel struct {
	BaseModel
	JobID       string              `gorm:"type:varchar(36);index"`
	Ordinal     int
	Rule        models.ApprovalRule `gorm:"type:varchar(10)"`
	ApproverIDs pq.StringArray      `gorm:"type:text[]"`
}

// Зафиксированное решение согласующего на уровне. Сбрасывается при
// возврате задания: пересогласование всегда начинается с первого уровня.
type JobLevelAction struct {
	BaseModel
	JobID    string                  `gorm:"type:varchar(36);index"`
	Level    int
	ActorID  string                  `gorm:"type:varchar(36)"`
	Decision models.ApprovalDecision `gorm:"type:varchar(20)"`
	Comment  string
}

type JobComment struct {
	BaseSpaceModel
	JobID    string `gorm:"type:varchar(36);index"`
	AuthorID string `gorm:"type:varchar(36)"`
	Author   *PortalUser `gorm:"foreignKey:AuthorID"`
	Comment  string
}

// Счетчик человекочитаемых номеров заданий в пространстве за год
type JobSequence struct {
	SpaceID string `gorm:"type:varchar(36);primaryKey"`
	Year    int    `gorm:"primaryKey"`
	Counter int
}
