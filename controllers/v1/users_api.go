package apiv1

import (
	"github.com/gofiber/fiber/v2"
	"jd-portal-backend/controllers"
	portaluserhandler "jd-portal-backend/lib/portal-users"
	"jd-portal-backend/middleware"
	apimodels "jd-portal-backend/models/api"
	usersapimodels "jd-portal-backend/models/api/users"
)

type usersApiController struct {
	controllers.BaseAPIController
}

func InitUsersApiRouters(app *fiber.App) {
	controller := usersApiController{}
	app.Route("users", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Use(middleware.SpaceAdminRequired()).Post("", controller.create)
	})
}

// @Summary Создание
// @Tags Пользователи
// @Description Создание пользователя портала
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body body	 usersapimodels.UserCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users [post]
func (c *usersApiController) create(ctx *fiber.Ctx) error {
	var payload usersapimodels.UserCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}

	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	spaceID := middleware.GetUserSpace(ctx)
	id, err := portaluserhandler.Instance.Create(spaceID, payload)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка создания пользователя")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Список
// @Tags Пользователи
// @Description Активные пользователи пространства
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]usersapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/space/users [get]
func (c *usersApiController) list(ctx *fiber.Ctx) error {
	spaceID := middleware.GetUserSpace(ctx)
	resp, err := portaluserhandler.Instance.List(spaceID)
	if err != nil {
		return c.SendError(ctx, c.GetLogger(ctx), err, "Ошибка получения списка пользователей")
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
