package specification

import (
	"notekeeper-be/internal/repository/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ByID filters by primary key
type ByID struct {
	ID int64
}

func (s ByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("id = ?", s.ID)
}

// NewestFirst orders by created_at DESC, id DESC
type NewestFirst struct{}

func (s NewestFirst) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.OrderByNewestFirst)
}

// NotDeleted filters out soft-deleted records
type NotDeleted struct{}

func (s NotDeleted) Apply(db *gorm.DB) *gorm.DB {
	return db.Scopes(scope.ExcludeSoftDelete)
}

type Pagination struct {
	Limit  int
	Offset int
}

func (s Pagination) Apply(db *gorm.DB) *gorm.DB {
	return db.Limit(s.Limit).Offset(s.Offset)
}

// ForUpdate takes a row lock; only meaningful inside a transaction.
type ForUpdate struct{}

func (s ForUpdate) Apply(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
}
