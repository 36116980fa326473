package scope

import "gorm.io/gorm"

// ExcludeSoftDelete hides rows flagged is_deleted.
func ExcludeSoftDelete(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}
