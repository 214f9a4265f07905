package models

import "time"

// Mark is one exam score for one student.
type Mark struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	StudentID uint    `json:"student_id" gorm:"index;not null"`
	Subject   string  `json:"subject" gorm:"size:60;not null"`
	Term      string  `json:"term" gorm:"size:20;not null"` // e.g. "2026-1"
	Exam      string  `json:"exam" gorm:"size:40;not null"` // e.g. "midterm", "final"
	Score     float64 `json:"score" gorm:"not null"`
	MaxScore  float64 `json:"max_score" gorm:"not null"`
	MarkedBy  uint    `json:"marked_by" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
