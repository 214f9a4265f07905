package models

import "time"

// Roles an account can hold. The role decides which routes a session may use.
const (
	RoleAdmin   = "admin"
	RoleClerk   = "clerk"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ValidRole reports whether r is one of the four known roles.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleClerk, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

type User struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	Username     string `json:"username" gorm:"uniqueIndex;size:60;not null"`
	PasswordHash string `json:"-" gorm:"size:128;not null"`
	Salt         string `json:"-" gorm:"size:32;not null"`
	Role         string `json:"role" gorm:"size:20;not null"`
	Name         string `json:"name" gorm:"size:120"`

	// StudentID links a student-role account to its student record so the
	// /my/* routes can resolve the caller's own data.
	StudentID *uint `json:"student_id,omitempty" gorm:"index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
