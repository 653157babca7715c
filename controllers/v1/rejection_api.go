package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"jd-portal-backend/controllers"
	rejectionhandler "jd-portal-backend/lib/rejection-request"
	"jd-portal-backend/middleware"
	apimodels "jd-portal-backend/models/api"
	rejectionapimodels "jd-portal-backend/models/api/rejection"
)

type rejectionApiController struct {
	controllers.BaseAPIController
}

func InitRejectionApiRouters(app *fiber.App) {
	controller := rejectionApiController{}
	app.Route("job/:id/rejection", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Get("", controller.list)
		router.Put(":rec_id/approve", controller.approve)
		router.Put(":rec_id/deny", controller.deny)
	})
}

// @Summary Запрос на отказ
// @Tags Отказ от задания
// @Description Исполнитель запрашивает отказ от задания
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 rejectionapimodels.RejectionRequestData	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/rejection [post]
func (c *rejectionApiController) create(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	var payload rejectionapimodels.RejectionRequestData
	if err = c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err = payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	id, err := rejectionhandler.Instance.Create(spaceID, jobID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания запроса на отказ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список запросов
// @Tags Отказ от задания
// @Description Запросы на отказ по заданию
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "job ID"
// @Success 200 {object} apimodels.Response{data=[]rejectionapimodels.RejectionRequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/rejection [get]
func (c *rejectionApiController) list(ctx *fiber.Ctx) error {
	jobID, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	resp, err := rejectionhandler.Instance.ListByJob(spaceID, jobID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения запросов на отказ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Принять отказ
// @Tags Отказ от задания
// @Description Автор принимает отказ, задание отклоняется
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 rejectionapimodels.ResolveData	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Param   rec_id          	path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/rejection/{rec_id}/approve [put]
func (c *rejectionApiController) approve(ctx *fiber.Ctx) error {
	recID := ctx.Params("rec_id")
	if recID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор запроса"))
	}

	var payload rejectionapimodels.ResolveData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err := rejectionhandler.Instance.Approve(spaceID, recID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка принятия запроса на отказ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отклонить запрос
// @Tags Отказ от задания
// @Description Автор отклоняет запрос, задание продолжается
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 rejectionapimodels.DenyData	true	"request body"
// @Param   id          		path    string  				    	true         "job ID"
// @Param   rec_id          	path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/job/{id}/rejection/{rec_id}/deny [put]
func (c *rejectionApiController) deny(ctx *fiber.Ctx) error {
	recID := ctx.Params("rec_id")
	if recID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор запроса"))
	}

	var payload rejectionapimodels.DenyData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	userID := middleware.GetUserID(ctx)
	err := rejectionhandler.Instance.Deny(spaceID, recID, userID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка отклонения запроса на отказ")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
