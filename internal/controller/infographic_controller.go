package controller

import (
	"infograph-be/internal/pkg/serverutils"
	"infograph-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IInfographicController interface {
	RegisterRoutes(r fiber.Router, jwt fiber.Handler)
	Show(ctx *fiber.Ctx) error
	Image(ctx *fiber.Ctx) error
}

type infographicController struct {
	infographicService service.IInfographicService
}

func NewInfographicController(infographicService service.IInfographicService) IInfographicController {
	return &infographicController{
		infographicService: infographicService,
	}
}

func (c *infographicController) RegisterRoutes(r fiber.Router, jwt fiber.Handler) {
	h := r.Group("/sessions")
	h.Use(jwt)
	h.Get(":id/infographic", c.Show)
	h.Get(":id/infographic/image", c.Image)
}

func (c *infographicController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.infographicService.GetBySession(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get infographic", res))
}

func (c *infographicController) Image(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	sessionId, _ := uuid.Parse(ctx.Params("id"))

	path, err := c.infographicService.GetImagePath(ctx.Context(), userId, sessionId)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, "image/png")
	return ctx.SendFile(path)
}
