package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ByEmail matches emails case-insensitively; they are stored lower-cased.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", strings.ToLower(strings.TrimSpace(s.Email)))
}
