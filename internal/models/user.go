package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Role string

const (
	RoleStudent Role = "student"
	RoleClient  Role = "client"
	RoleAdmin   Role = "admin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name  string    `gorm:"not null" json:"name"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;index" json:"role"`

	// Flipped only by admins; drives the moderation cascade.
	IsBanned bool `gorm:"default:false;index" json:"is_banned"`

	BlockedIDs datatypes.JSONSlice[uuid.UUID] `json:"blocked_ids,omitempty"`

	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	TotalRatings  int     `gorm:"default:0" json:"total_ratings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
