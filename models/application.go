package models

import "time"

// Application is a leave/outpass request moving through its approval chain.
// The partial unique index on student_id enforces the one-pending-application
// rule at write time, so two racing submissions cannot both land.
type Application struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	RefCode string `json:"ref_code" gorm:"size:36;uniqueIndex;not null"`

	StudentID uint            `json:"student_id" gorm:"not null;index:idx_app_student_status;index:idx_one_pending,unique,where:status = 'pending'"`
	Student   *Student        `json:"student,omitempty" gorm:"foreignKey:StudentID"`
	Type      ApplicationType `json:"application_type" gorm:"size:10;not null;index:idx_app_type_status"`

	// Approver snapshot taken at submission; never re-resolved afterwards.
	CounsellorEmail string `json:"counsellor_email" gorm:"size:120;not null"`
	HODEmail        string `json:"hod_email,omitempty" gorm:"size:120"` // leave only
	WardenEmail     string `json:"warden_email" gorm:"size:120;not null"`

	// Outpass schedule.
	InitialTime        *time.Time `json:"initial_time,omitempty"`
	ExpectedReturnTime *time.Time `json:"expected_return_time,omitempty"`
	// Leave schedule.
	JourneyDate *time.Time `json:"journey_date,omitempty"`
	ReturnDate  *time.Time `json:"return_date,omitempty"`

	Reason           string  `json:"reason" gorm:"size:500;not null"`
	Address          string  `json:"address" gorm:"size:200;not null"`
	Attendance       float64 `json:"attendance" gorm:"not null"`        // 0..100
	LastSemesterSGPA float64 `json:"last_semester_sgpa" gorm:"not null"` // 0..10

	Status       Status `json:"status" gorm:"size:12;not null;default:pending;index:idx_app_student_status;index:idx_app_type_status;index:idx_app_level_status"`
	CurrentLevel Level  `json:"current_level" gorm:"size:16;not null;default:counsellor;index:idx_app_level_status"`

	// One row per role in the chain, created unapproved at submission.
	Approvals []Approval `json:"approvals" gorm:"foreignKey:ApplicationID"`

	// Populated only when Status is rejected.
	RejectedByID    *uint      `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty" gorm:"size:200"`

	SubmittedAt time.Time `json:"submitted_at" gorm:"autoCreateTime"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ApprovalFor returns the sub-record for a role, or nil when the role
// is not part of this application's chain.
func (a *Application) ApprovalFor(role Role) *Approval {
	for i := range a.Approvals {
		if a.Approvals[i].Role == role {
			return &a.Approvals[i]
		}
	}
	return nil
}

// DurationDays is the leave span in whole days (0 for outpass).
func (a *Application) DurationDays() int {
	if a.Type != TypeLeave || a.JourneyDate == nil || a.ReturnDate == nil {
		return 0
	}
	return int(a.ReturnDate.Sub(*a.JourneyDate).Hours()/24 + 0.999)
}

// DurationHours is the outpass span in whole hours (0 for leave).
func (a *Application) DurationHours() int {
	if a.Type != TypeOutpass || a.InitialTime == nil || a.ExpectedReturnTime == nil {
		return 0
	}
	return int(a.ExpectedReturnTime.Sub(*a.InitialTime).Hours() + 0.999)
}

// Approval tracks one role's decision on one application.
// (application_id, role) is unique: at most one record per role.
type Approval struct {
	ID            uint       `json:"id" gorm:"primaryKey"`
	ApplicationID uint       `json:"application_id" gorm:"not null;index:idx_approval_app_role,unique"`
	Role          Role       `json:"role" gorm:"size:16;not null;index:idx_approval_app_role,unique"`
	Approved      bool       `json:"approved" gorm:"not null;default:false"`
	ApproverID    *uint      `json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`
	Comment       string     `json:"comment,omitempty" gorm:"size:200"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
