package models

import (
	"time"

	"gorm.io/datatypes"
)

// Recipient types a notification row can be addressed to. Singular types pair
// with a concrete recipient ID; plural types and "all" pair with "ALL".
const (
	RecipientStudent  = "student"
	RecipientTeacher  = "teacher"
	RecipientAdmin    = "admin"
	RecipientStudents = "students"
	RecipientTeachers = "teachers"
	RecipientAdmins   = "admins"
	RecipientAll      = "all"
)

// RecipientAllID is the recipient ID used for topic rows.
const RecipientAllID = "ALL"

// Notification is one persisted fan-out row. A row is unread iff ReadAt is null.
type Notification struct {
	ID            uint              `gorm:"primaryKey" json:"id"`
	Type          string            `gorm:"size:64" json:"type"`
	Title         string            `gorm:"size:255;not null" json:"title"`
	Body          string            `gorm:"type:text" json:"body"`
	Data          datatypes.JSONMap `gorm:"type:json" json:"data"`
	RecipientType string            `gorm:"size:16;index;not null" json:"recipient_type"`
	RecipientID   string            `gorm:"size:64;index;not null" json:"recipient_id"`
	ReadAt        *time.Time        `json:"read_at"`
	CreatedAt     time.Time         `gorm:"index" json:"created_at"`
}

// DeviceToken registers a push-capable device. Re-registering the same token
// upserts the row.
type DeviceToken struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Token         string    `gorm:"size:500;uniqueIndex;not null" json:"token"`
	Platform      string    `gorm:"size:16" json:"platform"`
	RecipientType string    `gorm:"size:16;index;not null" json:"recipient_type"`
	RecipientID   string    `gorm:"size:64;index;not null" json:"recipient_id"`
	IsValid       bool      `gorm:"not null;default:true" json:"is_valid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
