package controller

import (
	"strconv"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/serverutils"
	"notekeeper-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type INoteController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type noteController struct {
	noteService      service.INoteService
	noteQueryService service.INoteQueryService
	authMiddleware   fiber.Handler
}

func NewNoteController(noteService service.INoteService, noteQueryService service.INoteQueryService, authMiddleware fiber.Handler) INoteController {
	return &noteController{
		noteService:      noteService,
		noteQueryService: noteQueryService,
		authMiddleware:   authMiddleware,
	}
}

func (c *noteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notes")
	h.Use(c.authMiddleware)
	h.Get("", c.List)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Patch("/:id", c.Delete)
	h.Delete("/:id", c.Delete)
}

func noteId(ctx *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.Validation("Invalid note id")
	}
	return id, nil
}

func (c *noteController) List(ctx *fiber.Ctx) error {
	identity, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.ListNotesRequest
	if err := ctx.QueryParser(&req); err != nil {
		return apperror.Validation("Invalid query parameters")
	}

	res, err := c.noteQueryService.List(ctx.UserContext(), identity.UserId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.PaginatedResponse("Success get notes", res.Data, res.Meta))
}

func (c *noteController) Show(ctx *fiber.Ctx) error {
	identity, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteQueryService.Show(ctx.UserContext(), identity.UserId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get note", res))
}

func (c *noteController) Create(ctx *fiber.Ctx) error {
	identity, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		if req.Title == "" || req.Content == "" {
			return apperror.Validation("Title and content are required")
		}
		return err
	}

	res, err := c.noteService.Create(ctx.UserContext(), identity.Email, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create note", res))
}

func (c *noteController) Update(ctx *fiber.Ctx) error {
	identity, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateNoteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperror.Validation("Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.noteService.Update(ctx.UserContext(), identity.UserId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update note", res))
}

// Delete is a soft delete, served on both PATCH and DELETE.
func (c *noteController) Delete(ctx *fiber.Ctx) error {
	identity, err := serverutils.CurrentIdentity(ctx)
	if err != nil {
		return err
	}
	id, err := noteId(ctx)
	if err != nil {
		return err
	}

	res, err := c.noteService.SoftDelete(ctx.UserContext(), identity.UserId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete note", res))
}
