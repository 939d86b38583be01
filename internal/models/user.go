package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	CreatedAt    time.Time
}

// Session is a persisted login session. Only the token hash is stored.
type Session struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	TokenHash string            `gorm:"column:token_hash;not null;uniqueIndex"`
	Metadata  datatypes.JSONMap `gorm:"type:json"`
	ExpiresAt time.Time         `gorm:"not null;index"`
	RevokedAt *time.Time
	CreatedAt time.Time
}
