package models

import "time"

// Announcement audiences. Readers see "all" plus the audience matching their
// own role; admins see everything.
const (
	AudienceAll      = "all"
	AudienceTeachers = "teachers"
	AudienceStudents = "students"
	AudienceClerks   = "clerks"
)

type Announcement struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Body        string    `json:"body" gorm:"type:text;not null"`
	Audience    string    `json:"audience" gorm:"size:20;not null;index"`
	AuthorID    uint      `json:"author_id" gorm:"index"`
	PublishedAt time.Time `json:"published_at" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
