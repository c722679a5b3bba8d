package repository

import "gorm.io/gorm"

// byPosition orders rows by position. Ties fall back to creation time and
// then id so reads stay deterministic when two rows share a position.
func byPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position").Order("created_at").Order("id")
}
