package dto

import (
	"time"

	"notekeeper-be/internal/entity"
	"notekeeper-be/internal/pkg/pagination"
)

type CreateNoteRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

// UpdateNoteRequest is a patch; nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content *string `json:"content" validate:"omitempty,min=1"`
}

// ListNotesRequest carries the raw query string; the query service parses it.
type ListNotesRequest struct {
	Page      string `query:"page"`
	Limit     string `query:"limit"`
	Search    string `query:"search"`
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

type NoteFilter struct {
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
}

type NoteResponse struct {
	Id        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type NotePageResponse struct {
	Data []NoteResponse  `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

func NewNoteResponse(note *entity.Note) NoteResponse {
	return NoteResponse{
		Id:        note.Id,
		Title:     note.Title,
		Content:   note.Content,
		CreatedAt: note.CreatedAt,
	}
}

func NewNoteResponses(notes []*entity.Note) []NoteResponse {
	res := make([]NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, NewNoteResponse(n))
	}
	return res
}
