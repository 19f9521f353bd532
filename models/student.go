package models

import "time"

type Student struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:50;not null"`
	Email          string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"size:100;not null"` // bcrypt hash
	Mobile         string    `json:"mobile" gorm:"size:15;not null"`
	ParentMobile   string    `json:"parent_mobile" gorm:"size:15"`
	RegistrationNo string    `json:"registration_no" gorm:"size:20;uniqueIndex;not null"`
	Year           string    `json:"year" gorm:"size:20;not null"` // "First Year".."Fourth Year"
	Branch         string    `json:"branch" gorm:"size:60;not null"`
	Hostel         string    `json:"hostel" gorm:"size:40;not null"`
	Flank          string    `json:"flank" gorm:"size:10"`
	IsActive       bool      `json:"is_active" gorm:"not null;default:true"`
	LastLogin      time.Time `json:"last_login"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
