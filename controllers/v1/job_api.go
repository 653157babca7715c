package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"jd-portal-backend/controllers"
	jobflowhandler "jd-portal-backend/lib/job-flow"
	"jd-portal-backend/middleware"
	"jd-portal-backend/models"
	apimodels "jd-portal-backend/models/api"
	jobapimodels "jd-portal-backend/models/api/job"
)

type jobApiController struct {
	controllers.BaseAPIController
}

func InitJobApiRouters(app *fiber.App) {
	controller := jobApiController{}
	app.Route("job", func(router fiber.Router) {
		router.Post("list", controller.list)
		router.Post("export", controller.export)
		router.Get("due_window", controller.dueWindow)
		router.Post("", controller.create)
		router.Route(":id", func(idRoute fiber.Router) {
			idRoute.Get("", controller.get)
			idRoute.Put("", controller.update)
			idRoute.Put("submit", controller.submit)                     // отправить на согласование
			idRoute.Put("approve", controller.approve)                   // согласовать
			idRoute.Put("return", controller.returnToAuthor)             // вернуть автору
			idRoute.Put("reject", controller.reject)                     // отклонить
			idRoute.Put("assign", controller.assign)                     // назначить исполнителя
			idRoute.Put("start", controller.start)                       // взять в работу
			idRoute.Put("request_close", controller.requestClose)        // сдать работу
			idRoute.Put("confirm_close", controller.confirmClose)        // принять и закрыть
			idRoute.Put("request_revision", controller.requestRevision)  // вернуть сданную работу
			idRoute.Put("revise", controller.revise)                     // на доработку из работы
			idRoute.Post("comment", controller.addComment)
			idRoute.Get("comments", controller.comments)
			idRoute.Get("timeline", controller.timeline)
		})
	})
}

// @Summary Создание
// @Tags Задания
// @Description Создание черновика задания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job [post]
func (c *jobApiController) create(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := jobflowhandler.Instance.Create(spaceID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Обновление
// @Tags Задания
// @Description Обновление черновика задания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobEditData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id} [put]
func (c *jobApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.JobEditData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.Update(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка обновления задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Получение по ИД
// @Tags Задания
// @Description Получение по ИД
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id} [get]
func (c *jobApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := jobflowhandler.Instance.GetByID(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Список
// @Tags Задания
// @Description Список с фильтром и пагинацией
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]jobapimodels.JobView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/list [post]
func (c *jobApiController) list(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, rowCount, err := jobflowhandler.Instance.List(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка заданий")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(resp, rowCount))
}

// @Summary Выгрузка в xlsx
// @Tags Задания
// @Description Выгрузка реестра заданий в xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.JobFilter	true	"request body"
// @Success 200 {file} file
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/export [post]
func (c *jobApiController) export(ctx *fiber.Ctx) error {
	var payload jobapimodels.JobFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	buf, err := jobflowhandler.Instance.Export(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка выгрузки заданий")
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="jobs.xlsx"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Окно выбора срока
// @Tags Задания
// @Description Срок по SLA и минимально допустимая дата под тип и приоритет
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   job_type_id			query		string	true	"тип задания"
// @Param   priority			query		string	false	"normal/urgent"
// @Success 200 {object} apimodels.Response{data=jobapimodels.DueDateWindowView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/due_window [get]
func (c *jobApiController) dueWindow(ctx *fiber.Ctx) error {
	jobTypeID := ctx.Query("job_type_id")
	if jobTypeID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан тип задания"))
	}
	priority := models.JobPriority(ctx.Query("priority", string(models.JobPriorityNormal)))
	if !priority.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("неизвестный приоритет"))
	}
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := jobflowhandler.Instance.DueDateWindow(spaceID, jobTypeID, priority)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка расчета окна срока")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary На согласование
// @Tags Задания
// @Description Отправить задание на согласование
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.SubmitData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/submit [put]
func (c *jobApiController) submit(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.SubmitData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.Submit(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отправки на согласование")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Согласовать
// @Tags Задания
// @Description Зафиксировать согласование на текущем уровне
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ApproveData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/approve [put]
func (c *jobApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.ApproveData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.Approve(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка согласования задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Вернуть автору
// @Tags Задания
// @Description Вернуть задание автору на доработку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/return [put]
func (c *jobApiController) returnToAuthor(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.ReasonData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.Return(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка возврата задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить
// @Tags Задания
// @Description Окончательно отклонить задание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ReasonData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/reject [put]
func (c *jobApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.ReasonData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.Reject(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Назначить исполнителя
// @Tags Задания
// @Description Назначить исполнителя согласованного задания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.AssignData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/assign [put]
func (c *jobApiController) assign(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.AssignData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.Assign(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка назначения исполнителя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Взять в работу
// @Tags Задания
// @Description Исполнитель берет задание в работу
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ActionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/start [put]
func (c *jobApiController) start(ctx *fiber.Ctx) error {
	return c.simpleAction(ctx, jobflowhandler.Instance.Start, "Ошибка взятия задания в работу")
}

// @Summary Сдать работу
// @Tags Задания
// @Description Исполнитель сдает работу на приемку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ActionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/request_close [put]
func (c *jobApiController) requestClose(ctx *fiber.Ctx) error {
	return c.simpleAction(ctx, jobflowhandler.Instance.RequestClose, "Ошибка сдачи работы")
}

// @Summary Принять и закрыть
// @Tags Задания
// @Description Автор принимает работу и закрывает задание
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.ActionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/confirm_close [put]
func (c *jobApiController) confirmClose(ctx *fiber.Ctx) error {
	return c.simpleAction(ctx, jobflowhandler.Instance.ConfirmClose, "Ошибка закрытия задания")
}

func (c *jobApiController) simpleAction(ctx *fiber.Ctx, action func(spaceID, id, userID string, data jobapimodels.ActionData) error, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.ActionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = action(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Вернуть сданную работу
// @Tags Задания
// @Description Автор возвращает сданную работу на доработку
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.RevisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/request_revision [put]
func (c *jobApiController) requestRevision(ctx *fiber.Ctx) error {
	return c.revisionAction(ctx, jobflowhandler.Instance.RequestRevision, "Ошибка возврата работы на доработку")
}

// @Summary На доработку
// @Tags Задания
// @Description Автор отправляет задание на доработку из работы
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.RevisionData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/revise [put]
func (c *jobApiController) revise(ctx *fiber.Ctx) error {
	return c.revisionAction(ctx, jobflowhandler.Instance.Revise, "Ошибка отправки задания на доработку")
}

func (c *jobApiController) revisionAction(ctx *fiber.Ctx, action func(spaceID, id, userID string, data jobapimodels.RevisionData) error, errMsg string) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.RevisionData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = action(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, errMsg)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Комментарий
// @Tags Задания
// @Description Добавить комментарий к заданию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 jobapimodels.CommentData	true	"request body"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/comment [post]
func (c *jobApiController) addComment(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload jobapimodels.CommentData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err = jobflowhandler.Instance.AddComment(spaceID, id, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления комментария")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Комментарии
// @Tags Задания
// @Description Комментарии задания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.CommentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/comments [get]
func (c *jobApiController) comments(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := jobflowhandler.Instance.Comments(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения комментариев")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Лента задания
// @Tags Задания
// @Description История событий задания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response{data=[]jobapimodels.TimelineView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/timeline [get]
func (c *jobApiController) timeline(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := jobflowhandler.Instance.Timeline(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения ленты задания")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
