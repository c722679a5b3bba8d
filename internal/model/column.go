package model

import (
	"time"

	"github.com/google/uuid"
)

type Column struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	BoardID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"size:100;not null"`
	Position  int       `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Tasks []Task `gorm:"foreignKey:ColumnID;constraint:OnDelete:CASCADE"`
}

// DefaultColumnNames are the stages every new board starts with, left to right.
var DefaultColumnNames = []string{"To Do", "In Progress", "Done"}

// NewDefaultColumns builds the starter columns for a board, positioned 0..n-1.
func NewDefaultColumns(boardID uuid.UUID) []Column {
	columns := make([]Column, len(DefaultColumnNames))
	for i, name := range DefaultColumnNames {
		columns[i] = Column{
			BoardID:  boardID,
			Name:     name,
			Position: i,
		}
	}
	return columns
}
