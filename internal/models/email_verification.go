package models

import "time"

// EmailVerification holds the latest verification attempt for an email.
// The unique index on email plus an upsert on request keeps exactly one
// governing row per address; re-requesting a code supersedes the old one.
type EmailVerification struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Email            string    `gorm:"not null;size:255;uniqueIndex:idx_email_verifications_email" json:"email"`
	VerificationCode string    `gorm:"not null;size:6" json:"-"`
	ExpiresAt        time.Time `gorm:"not null" json:"expires_at"`
	IsVerified       bool      `gorm:"not null;default:false" json:"is_verified"`
	CreatedAt        time.Time `json:"created_at"`
}
