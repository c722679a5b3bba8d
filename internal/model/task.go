package model

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ColumnID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"size:255;not null"`
	Description *string   `gorm:"type:text"`
	Position    int       `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Status is the name of the owning column. Filled by queries that join
	// columns; never written.
	Status string `gorm:"->;-:migration"`
}
