package models

import "time"

type Student struct {
	ID        uint       `gorm:"primaryKey"                   json:"id"`
	Code      string     `gorm:"size:20;uniqueIndex;not null" json:"code"` // student code shown in tables
	FirstName string     `gorm:"size:50;not null"             json:"first_name"`
	LastName  string     `gorm:"size:50;not null"             json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Grade     string     `gorm:"size:20;not null"  json:"grade"`
	Room      string     `gorm:"size:10"           json:"room"`
	ClassID   *uint      `gorm:"index"             json:"class_id,omitempty"`
	Address   string     `gorm:"type:text"         json:"address"`
	Phone     string     `gorm:"size:20"           json:"phone"`
	Status    string     `gorm:"size:20;not null"  json:"status"` // active|suspended|left|graduated
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
