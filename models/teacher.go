package models

import "time"

type Teacher struct {
	ID        uint      `gorm:"primaryKey"                   json:"id"`
	Code      string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	FirstName string    `gorm:"size:50;not null"             json:"first_name"`
	LastName  string    `gorm:"size:50;not null"             json:"last_name"`
	Subjects  string    `gorm:"size:200"          json:"subjects"` // comma-separated subject list
	Phone     string    `gorm:"size:20"           json:"phone"`
	Status    string    `gorm:"size:20;not null"  json:"status"` // active|inactive
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
