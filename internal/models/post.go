package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is student-authored content (portfolio write-ups, availability posts).
// Banning the author soft-removes every post in the same cascade batch.
type Post struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;index;not null" json:"author_id"`

	Title string `gorm:"not null" json:"title"`
	Body  string `gorm:"type:text" json:"body"`

	IsRemoved bool `gorm:"default:false;index" json:"is_removed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author *User `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}
