package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"notekeeper-be/internal/dto"
	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/apperror"
	"notekeeper-be/internal/pkg/pagination"
	"notekeeper-be/internal/repository/specification"
	"notekeeper-be/internal/repository/unitofwork"
)

const noteNotFoundMessage = "Note not found"

type INoteQueryService interface {
	FindAll(ctx context.Context, userId int64, page pagination.Params, filter dto.NoteFilter) ([]*entity.Note, int64, error)
	FindById(ctx context.Context, userId int64, id int64) (*entity.Note, error)
	List(ctx context.Context, userId int64, req *dto.ListNotesRequest) (*dto.NotePageResponse, error)
	Show(ctx context.Context, userId int64, id int64) (*dto.NoteResponse, error)
}

type noteQueryService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewNoteQueryService(uowFactory unitofwork.RepositoryFactory) INoteQueryService {
	return &noteQueryService{uowFactory: uowFactory}
}

func filterSpecifications(userId int64, filter dto.NoteFilter) []specification.Specification {
	specs := specification.ActiveNotesOf(userId)
	if filter.Search != "" {
		specs = append(specs, specification.NoteSearchQuery{Query: filter.Search})
	}
	if filter.StartDate != nil {
		specs = append(specs, specification.CreatedFrom{From: *filter.StartDate})
	}
	if filter.EndDate != nil {
		specs = append(specs, specification.CreatedUntil{Until: *filter.EndDate})
	}
	return specs
}

func (s *noteQueryService) FindAll(ctx context.Context, userId int64, page pagination.Params, filter dto.NoteFilter) ([]*entity.Note, int64, error) {
	page = page.Normalize()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	specs := filterSpecifications(userId, filter)

	total, err := uow.NoteRepository().Count(ctx, specs...)
	if err != nil {
		return nil, 0, apperror.Internal("Failed to fetch notes", err)
	}
	if total == 0 {
		return []*entity.Note{}, 0, nil
	}

	pageSpecs := make([]specification.Specification, 0, len(specs)+2)
	pageSpecs = append(pageSpecs, specs...)
	pageSpecs = append(pageSpecs,
		specification.NewestFirst{},
		specification.Pagination{Limit: page.Limit, Offset: page.Offset()},
	)

	notes, err := uow.NoteRepository().FindAll(ctx, pageSpecs...)
	if err != nil {
		return nil, 0, apperror.Internal("Failed to fetch notes", err)
	}
	return notes, total, nil
}

func (s *noteQueryService) FindById(ctx context.Context, userId int64, id int64) (*entity.Note, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.OwnedActiveNote(userId, id)...)
	if err != nil {
		return nil, apperror.Internal("Failed to fetch note", err)
	}
	if note == nil {
		return nil, apperror.NotFound(noteNotFoundMessage)
	}
	return note, nil
}

func (s *noteQueryService) List(ctx context.Context, userId int64, req *dto.ListNotesRequest) (*dto.NotePageResponse, error) {
	page, filter, err := parseListRequest(req)
	if err != nil {
		return nil, err
	}

	notes, total, err := s.FindAll(ctx, userId, page, filter)
	if err != nil {
		return nil, err
	}

	return &dto.NotePageResponse{
		Data: dto.NewNoteResponses(notes),
		Meta: pagination.NewMeta(total, page.Page, page.Limit),
	}, nil
}

func (s *noteQueryService) Show(ctx context.Context, userId int64, id int64) (*dto.NoteResponse, error) {
	note, err := s.FindById(ctx, userId, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewNoteResponse(note)
	return &res, nil
}

func parseListRequest(req *dto.ListNotesRequest) (pagination.Params, dto.NoteFilter, error) {
	var (
		page   pagination.Params
		filter dto.NoteFilter
		err    error
	)

	page.Page, err = parseBoundedInt(req.Page, pagination.DefaultPage, 1, pagination.MaxPage)
	if err != nil {
		return page, filter, apperror.Validation("page must be an integer between 1 and 2147483647")
	}
	page.Limit, err = parseBoundedInt(req.Limit, pagination.DefaultLimit, 1, pagination.MaxLimit)
	if err != nil {
		return page, filter, apperror.Validation("limit must be an integer between 1 and 100")
	}

	filter.Search = req.Search

	if req.StartDate != "" {
		start, _, err := parseDate(req.StartDate)
		if err != nil {
			return page, filter, apperror.Validation("Invalid startDate")
		}
		filter.StartDate = &start
	}
	if req.EndDate != "" {
		end, dateOnly, err := parseDate(req.EndDate)
		if err != nil {
			return page, filter, apperror.Validation("Invalid endDate")
		}
		if dateOnly {
			// A bare date covers the whole day
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
		filter.EndDate = &end
	}
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return page, filter, apperror.Validation("startDate must not be after endDate")
	}

	return page, filter, nil
}

// parseBoundedInt returns def for an empty value and rejects anything outside [lo, hi].
func parseBoundedInt(raw string, def, lo, hi int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < lo || n > hi {
		return 0, strconv.ErrRange
	}
	return n, nil
}

var dateTimeLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"}

const dateOnlyLayout = "2006-01-02"

// parseDate reads an ISO-8601 timestamp or a bare date. Values without a zone are UTC.
func parseDate(raw string) (t time.Time, dateOnly bool, err error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateTimeLayouts {
		if t, err = time.Parse(layout, raw); err == nil {
			return t.UTC(), false, nil
		}
	}
	if t, err = time.Parse(dateOnlyLayout, raw); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}
