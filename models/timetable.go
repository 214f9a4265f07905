package models

import "time"

// TimetableEntry is one period of one class on one weekday. A class cannot
// have two entries in the same period of the same day.
type TimetableEntry struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ClassID   uint   `gorm:"index;not null;uniqueIndex:idx_class_slot" json:"class_id"`
	TeacherID uint   `gorm:"index;not null"   json:"teacher_id"`
	Subject   string `gorm:"size:60;not null" json:"subject"`
	DayOfWeek int    `gorm:"not null;uniqueIndex:idx_class_slot" json:"day_of_week"` // 1 = Monday … 7 = Sunday
	Period    int    `gorm:"not null;uniqueIndex:idx_class_slot" json:"period"`
	StartTime string `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
