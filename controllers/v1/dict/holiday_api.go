package dict

import (
	"github.com/gofiber/fiber/v2"
	"jd-portal-backend/controllers"
	holidayprovider "jd-portal-backend/lib/holiday"
	"jd-portal-backend/middleware"
	apimodels "jd-portal-backend/models/api"
	dictapimodels "jd-portal-backend/models/api/dict"
)

type holidayDictApiController struct {
	controllers.BaseAPIController
}

func InitHolidayDictApiRouters(app *fiber.App) {
	controller := holidayDictApiController{}
	app.Route("holiday", func(router fiber.Router) {
		router.Get("", controller.holidayList)
		router.Use(middleware.SpaceAdminRequired())
		router.Post("", controller.holidayCreate)
		router.Delete(":id", controller.holidayDelete)
	})
}

// @Summary Создание
// @Tags Справочник. Производственный календарь
// @Description Добавление нерабочего дня
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 dictapimodels.HolidayData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/holiday [post]
func (c *holidayDictApiController) holidayCreate(ctx *fiber.Ctx) error {
	var payload dictapimodels.HolidayData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := holidayprovider.Instance.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка добавления нерабочего дня")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Справочник. Производственный календарь
// @Description Список нерабочих дней
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]dictapimodels.HolidayView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/holiday [get]
func (c *holidayDictApiController) holidayList(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := holidayprovider.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка нерабочих дней")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Удаление
// @Tags Справочник. Производственный календарь
// @Description Удаление нерабочего дня
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  				    	true         "rec ID"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/dict/holiday/{id} [delete]
func (c *holidayDictApiController) holidayDelete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	spaceID := middleware.GetUserSpace(ctx)
	err = holidayprovider.Instance.Delete(spaceID, id)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка удаления нерабочего дня")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
