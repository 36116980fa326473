package scope

import "gorm.io/gorm"

// OrderByNewestFirst sorts by creation time with id as the tie-breaker so
// pages never overlap when several rows share a timestamp.
func OrderByNewestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
