package models

import "time"

// Class is one homeroom group for an academic year, e.g. grade 6 room 2.
type Class struct {
	ID                uint      `gorm:"primaryKey"       json:"id"`
	Name              string    `gorm:"size:60;not null" json:"name"`
	Grade             string    `gorm:"size:20;not null" json:"grade"`
	Room              string    `gorm:"size:10;not null" json:"room"`
	AcademicYear      string    `gorm:"size:4;not null"  json:"academic_year"`
	HomeroomTeacherID *uint     `gorm:"index"            json:"homeroom_teacher_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
