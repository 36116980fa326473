package specification

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type NoteOwnedByUser struct {
	UserID int64
}

func (s NoteOwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.user_id = ?", s.UserID)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// NoteSearchQuery matches the query as a literal, case-insensitive substring
// of the title or the content.
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + likeEscaper.Replace(s.Query) + "%"
	return db.Where("(notes.title ILIKE ? OR notes.content ILIKE ?)", pattern, pattern)
}

type CreatedFrom struct {
	From time.Time
}

func (s CreatedFrom) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.created_at >= ?", s.From)
}

type CreatedUntil struct {
	Until time.Time
}

func (s CreatedUntil) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("notes.created_at <= ?", s.Until)
}

// ActiveNotesOf is the tenant boundary every note query starts from.
func ActiveNotesOf(userID int64) []Specification {
	return []Specification{
		NoteOwnedByUser{UserID: userID},
		NotDeleted{},
	}
}

// OwnedActiveNote addresses a single note inside the tenant boundary.
func OwnedActiveNote(userID, noteID int64) []Specification {
	return append([]Specification{ByID{ID: noteID}}, ActiveNotesOf(userID)...)
}
