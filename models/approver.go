package models

import "time"

// Approver is a staff account: counsellor, hod, joint_director or warden.
// One table for all four roles; (role, email) identifies an approver when
// students name them on a submission.
type Approver struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Name       string    `json:"name" gorm:"size:50;not null"`
	Email      string    `json:"email" gorm:"size:120;not null;index:idx_approver_role_email,unique"`
	Password   string    `json:"-" gorm:"size:100;not null"` // bcrypt hash
	Mobile     string    `json:"mobile" gorm:"size:15;not null"`
	Role       Role      `json:"role" gorm:"size:16;not null;index:idx_approver_role_email,unique"`
	Department string    `json:"department" gorm:"size:60"` // counsellor/hod only
	IsActive   bool      `json:"is_active" gorm:"not null;default:true"`
	LastLogin  time.Time `json:"last_login"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
