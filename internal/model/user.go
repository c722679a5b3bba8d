package model

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username       string    `gorm:"size:50;uniqueIndex;not null"`
	Email          string    `gorm:"size:255;uniqueIndex;not null"`
	HashedPassword string    `gorm:"size:255;not null"`
	IsActive       bool      `gorm:"not null;default:true"`
	IsAdmin        bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
