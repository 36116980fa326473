package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
	"notekeeper-be/pkg/events"
)

const titleTooLongMessage = "title must be at most 255 characters"

type INoteService interface {
	Create(ctx context.Context, ownerEmail string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Update(ctx context.Context, userId int64, id int64, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	SoftDelete(ctx context.Context, userId int64, id int64) (*dto.NoteResponse, error)
}

type noteService struct {
	uowFactory unitofwork.RepositoryFactory
	publisher  events.Publisher
	logger     logger.ILogger
}

func NewNoteService(uowFactory unitofwork.RepositoryFactory, publisher events.Publisher, log logger.ILogger) INoteService {
	return &noteService{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     log,
	}
}

func (c *noteService) Create(ctx context.Context, ownerEmail string, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("Title and content are required")
	}
	if utf8.RuneCountInString(req.Title) > dto.MaxColumnLength {
		return nil, apperror.Validation(titleTooLongMessage)
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Owner is looked up by email at creation time
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: ownerEmail})
	if err != nil {
		return nil, apperror.Internal("Failed to create note", err)
	}
	if owner == nil {
		return nil, apperror.NotFound("User not found")
	}

	now := time.Now()
	note := entity.Note{
		Title:     req.Title,
		Content:   req.Content,
		UserId:    owner.Id,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uow.NoteRepository().Create(ctx, &note); err != nil {
		return nil, apperror.Internal("Failed to create note", err)
	}

	publishEvent(ctx, c.publisher, c.logger, events.TypeNoteCreated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": note.UserId,
		"title":   note.Title,
	})

	res := dto.NewNoteResponse(&note)
	return &res, nil
}

func (c *noteService) Update(ctx context.Context, userId int64, id int64, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if (req.Title != nil && strings.TrimSpace(*req.Title) == "") || (req.Content != nil && strings.TrimSpace(*req.Content) == "") {
		return nil, apperror.Validation("Title and content must not be empty")
	}
	if req.Title != nil && utf8.RuneCountInString(*req.Title) > dto.MaxColumnLength {
		return nil, apperror.Validation(titleTooLongMessage)
	}

	note, err := c.mutate(ctx, userId, id, "Failed to update note", func(note *entity.Note) {
		if req.Title != nil {
			note.Title = *req.Title
		}
		if req.Content != nil {
			note.Content = *req.Content
		}
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, c.publisher, c.logger, events.TypeNoteUpdated, map[string]interface{}{
		"note_id": note.Id,
		"user_id": note.UserId,
	})

	res := dto.NewNoteResponse(note)
	return &res, nil
}

func (c *noteService) SoftDelete(ctx context.Context, userId int64, id int64) (*dto.NoteResponse, error) {
	note, err := c.mutate(ctx, userId, id, "Failed to delete note", func(note *entity.Note) {
		note.IsDeleted = true
	})
	if err != nil {
		return nil, err
	}

	publishEvent(ctx, c.publisher, c.logger, events.TypeNoteDeleted, map[string]interface{}{
		"note_id": note.Id,
		"user_id": note.UserId,
	})

	res := dto.NewNoteResponse(note)
	return &res, nil
}

// mutate locks the caller's active note, applies fn and saves it in one transaction.
// Foreign, missing and soft-deleted notes all come back as NotFound.
func (c *noteService) mutate(ctx context.Context, userId int64, id int64, failMessage string, fn func(*entity.Note)) (*entity.Note, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Internal(failMessage, err)
	}
	defer uow.Rollback()

	specs := append(specification.OwnedActiveNote(userId, id), specification.ForUpdate{})
	note, err := uow.NoteRepository().FindOne(ctx, specs...)
	if err != nil {
		return nil, apperror.Internal(failMessage, err)
	}
	if note == nil {
		return nil, apperror.NotFound(noteNotFoundMessage)
	}

	fn(note)
	note.UpdatedAt = time.Now()

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, apperror.Internal(failMessage, err)
	}
	if err := uow.Commit(); err != nil {
		return nil, apperror.Internal(failMessage, err)
	}
	return note, nil
}
