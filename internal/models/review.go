package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is the client's rating of the selected student, unlocked once the
// gig reaches "completed".
type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	GigID     uuid.UUID `gorm:"type:uuid;index;unique" json:"gig_id"`
	ClientID  uuid.UUID `gorm:"type:uuid;index" json:"client_id"`
	StudentID uuid.UUID `gorm:"type:uuid;index" json:"student_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Gig     *Gig  `gorm:"foreignKey:GigID" json:"gig,omitempty"`
	Client  *User `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Student *User `gorm:"foreignKey:StudentID" json:"student,omitempty"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
