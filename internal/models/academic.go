package models

import "time"

// Classroom groups students of one class/section/medium combination.
type Classroom struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ClassName     string    `gorm:"size:64;not null" json:"class_name"`
	Section       string    `gorm:"size:16" json:"section"`
	Medium        string    `gorm:"size:32" json:"medium"`
	TotalStudents int       `gorm:"not null;default:0" json:"total_students"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// StudentEnrollment binds a student to a classroom. The largest enrollment ID
// for a student is treated as the current one.
type StudentEnrollment struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	StudentID   uint       `gorm:"index;not null" json:"student_id"`
	ClassroomID uint       `gorm:"index;not null" json:"classroom_id"`
	Student     *Student   `json:"student,omitempty"`
	Classroom   *Classroom `json:"classroom,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Subject is a taught discipline referenced by marks and resources.
type Subject struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:128;not null" json:"name"`
}
