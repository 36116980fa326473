package controller

import (
	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	SignUp(ctx *fiber.Ctx) error
	SignIn(ctx *fiber.Ctx) error
	Authorize(ctx *fiber.Ctx) error
}

type authController struct {
	service      service.IAuthService
	tokenService service.ITokenService
}

func NewAuthController(service service.IAuthService, tokenService service.ITokenService) IAuthController {
	return &authController{service: service, tokenService: tokenService}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Post("/signup", c.SignUp)
	h.Post("/signin", c.SignIn)
	h.Post("/authorize", c.Authorize)
}

func (c *authController) SignUp(ctx *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SignUp(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	token, err := c.tokenService.Issue(res.Email, res.Id)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created successfully", token))
}

func (c *authController) SignIn(ctx *fiber.Ctx) error {
	var req dto.SignInRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return apperror.Validation("Email and password are required")
	}

	token, err := c.service.SignIn(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Login success", token))
}

func (c *authController) Authorize(ctx *fiber.Ctx) error {
	token, err := c.service.Authorize(ctx.UserContext(), serverutils.BearerToken(ctx))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success", token))
}
