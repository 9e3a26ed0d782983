package models

import (
	"time"
)

// Comment belongs to exactly one thread or reverse request.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ThreadID  *uint     `json:"thread_id,omitempty"`
	ReverseID *uint     `json:"reverse_id,omitempty"`
	AuthorID  uint      `json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
