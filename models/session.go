package models

import "time"

// Session is one server-side login. The token is the primary key and the
// only credential a client holds after login. A session is valid iff the
// row exists and ExpiresAt is in the future; expiry is enforced at read
// time, not by a background job.
type Session struct {
	Token     string    `json:"-" gorm:"primaryKey;size:64"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	User      User      `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt time.Time `json:"expires_at" gorm:"index;not null"`
	CreatedAt time.Time `json:"created_at"`
}
