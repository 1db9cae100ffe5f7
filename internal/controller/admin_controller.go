package controller

import (
	"strconv"

	"bookgpt-be/internal/dto"
	"bookgpt-be/internal/pkg/serverutils"
	"bookgpt-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Analytics(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
	LogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Post("/login", c.Login)
	h.Get("/analytics", serverutils.JwtMiddleware, c.Analytics)
	h.Get("/logs", serverutils.JwtMiddleware, c.Logs)
	h.Get("/logs/:id", serverutils.JwtMiddleware, c.LogDetail)
}

func (c *adminController) Login(ctx *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res))
}

func (c *adminController) Analytics(ctx *fiber.Ctx) error {
	res, err := c.service.AnalyticsSummary(ctx.Context())
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Analytics summary", res))
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level", "")
	limit, _ := strconv.Atoi(ctx.Query("limit", "100"))
	offset, _ := strconv.Atoi(ctx.Query("offset", "0"))

	res, err := c.service.Logs(level, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Application logs", res))
}

func (c *adminController) LogDetail(ctx *fiber.Ctx) error {
	res, err := c.service.LogById(ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Log entry", res))
}
