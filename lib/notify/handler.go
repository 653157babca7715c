package notifyhandler

import (
	"fmt"

	"jd-portal-backend/db"
	portaluserstore "jd-portal-backend/lib/portal-users/store"
	"jd-portal-backend/lib/smtp"
	"jd-portal-backend/models"
	dbmodels "jd-portal-backend/models/db"

	log "github.com/sirupsen/logrus"
)

// Рассылка уведомлений по событиям ленты задания. Шаблон выбирается по
// ключу события; сбой доставки логируется и никогда не откатывает переход.

type Provider interface {
	JobEvent(event models.TimelineEventType, job dbmodels.DesignJob, recipientIDs []string)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		userStore: portaluserstore.NewInstance(db.DB),
	}
}

type impl struct {
	userStore portaluserstore.Provider
}

type template struct {
	subject string
	body    string
}

// шаблоны по ключу события; %v — номер и название задания
var templates = map[models.TimelineEventType]template{
	models.TimelineEventApprovalRequest: {
		subject: "Задание ожидает согласования",
		body:    "Задание %v «%v» ожидает вашего согласования.",
	},
	models.TimelineEventApproved: {
		subject: "Задание согласовано",
		body:    "Задание %v «%v» прошло все уровни согласования.",
	},
	models.TimelineEventRejected: {
		subject: "Задание отклонено",
		body:    "Задание %v «%v» отклонено.",
	},
	models.TimelineEventAssigned: {
		subject: "Назначено задание",
		body:    "Вам назначено задание %v «%v».",
	},
}

func (i impl) JobEvent(event models.TimelineEventType, job dbmodels.DesignJob, recipientIDs []string) {
	if !event.IsNotifiable() || len(recipientIDs) == 0 {
		return
	}
	logger := log.
		WithField("job_id", job.ID).
		WithField("event_type", event)
	tpl, ok := templates[event]
	if !ok {
		return
	}
	users, err := i.userStore.ListByIDs(recipientIDs)
	if err != nil {
		logger.WithError(err).Error("ошибка получения получателей уведомления")
		return
	}
	message := fmt.Sprintf(tpl.body, job.Reference, job.Title)
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		err = smtp.Instance.SendEMail(user.Email, tpl.subject, message)
		if err != nil {
			logger.
				WithError(err).
				WithField("recipient", user.Email).
				Error("ошибка отправки уведомления")
		}
	}
}
