package models

// ApplicationType selects which schedule fields and which approval chain apply.
type ApplicationType string

const (
	TypeLeave   ApplicationType = "leave"
	TypeOutpass ApplicationType = "outpass"
)

func (t ApplicationType) Valid() bool {
	return t == TypeLeave || t == TypeOutpass
}

// Role of a user account. "student" submits; the rest approve.
type Role string

const (
	RoleStudent       Role = "student"
	RoleCounsellor    Role = "counsellor"
	RoleHOD           Role = "hod"
	RoleJointDirector Role = "joint_director"
	RoleWarden        Role = "warden"
)

// ApproverRoles are the roles allowed to review applications.
var ApproverRoles = []Role{RoleCounsellor, RoleHOD, RoleJointDirector, RoleWarden}

func (r Role) IsApprover() bool {
	for _, a := range ApproverRoles {
		if r == a {
			return true
		}
	}
	return false
}

// Level is the role currently holding a pending application,
// or "completed" once the chain has been walked to the end.
type Level string

const (
	LevelCounsellor    Level = Level(RoleCounsellor)
	LevelHOD           Level = Level(RoleHOD)
	LevelJointDirector Level = Level(RoleJointDirector)
	LevelWarden        Level = Level(RoleWarden)
	LevelCompleted     Level = "completed"
)

// Role reports the approver role a level corresponds to (not meaningful for completed).
func (l Level) Role() Role { return Role(l) }

// Status of an application. Only pending can still change.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusCancelled
}
