package models

import "time"

// Attendance is one student's status on one day. Marking twice for the same
// day updates the existing row.
type Attendance struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	StudentID uint   `json:"student_id" gorm:"not null;uniqueIndex:idx_student_date"`
	Date      string `json:"date" gorm:"size:10;not null;uniqueIndex:idx_student_date"` // YYYY-MM-DD
	Status    string `json:"status" gorm:"size:20;not null"`                            // present|absent|late|leave
	Note      string `json:"note" gorm:"type:text"`
	MarkedBy  uint   `json:"marked_by" gorm:"index"` // user id of the recording teacher

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
