package models

import "time"

type Achievement struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	StudentID   uint   `json:"student_id" gorm:"index;not null"`
	Title       string `json:"title" gorm:"size:200;not null"`
	Description string `json:"description" gorm:"type:text"`
	Category    string `json:"category" gorm:"size:60"`           // academic|sports|arts|other
	AwardedOn   string `json:"awarded_on" gorm:"size:10;not null"` // YYYY-MM-DD
	RecordedBy  uint   `json:"recorded_by" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
