package workflow

import (
	"fmt"
	"strings"
	"time"

	"github.com/Abhi9av-Git/LeaveEase/models"
)

// Bounds from the submission/decision validators.
const (
	MinRejectionReasonLen = 5
	MaxRejectionReasonLen = 200
	MaxCommentLen         = 200
)

// Decision an actor takes on a pending application.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
	DecisionCancel  Decision = "cancel"
)

// Actor is the authenticated user attempting a decision.
type Actor struct {
	ID   uint
	Role models.Role
	Name string
}

// EffectKind selects who gets notified after a committed transition.
type EffectKind string

const (
	// EffectForward: the application advanced to a non-final level;
	// notify every active approver holding the new level's role.
	EffectForward EffectKind = "forward"
	// EffectFinalApproval / EffectFinalRejection: notify the submitter.
	EffectFinalApproval  EffectKind = "final_approval"
	EffectFinalRejection EffectKind = "final_rejection"
	// EffectNone: no notification mandated (cancellation).
	EffectNone EffectKind = "none"
)

// Effect is the notification outcome of a transition. NextLevel is set
// only for EffectForward.
type Effect struct {
	Kind      EffectKind
	NextLevel models.Level
}

// Transition applies a decision to the in-memory application and returns
// the notification effect. It mutates app only on success; any error
// leaves it untouched. The caller is responsible for committing the new
// state with a compare-and-swap on (status, current_level) so a racing
// duplicate observes ErrInvalidTransition instead of double-advancing.
func Transition(app *models.Application, actor Actor, decision Decision, comment string, now time.Time) (Effect, error) {
	if err := CanAct(actor, app, Action(decision)); err != nil {
		return Effect{}, err
	}

	switch decision {
	case DecisionApprove:
		return approve(app, actor, comment, now)
	case DecisionReject:
		return reject(app, actor, comment, now)
	case DecisionCancel:
		app.Status = models.StatusCancelled
		return Effect{Kind: EffectNone}, nil
	default:
		return Effect{}, fmt.Errorf("%w: unknown decision %q", ErrValidation, decision)
	}
}

func approve(app *models.Application, actor Actor, comment string, now time.Time) (Effect, error) {
	comment = strings.TrimSpace(comment)
	if len(comment) > MaxCommentLen {
		return Effect{}, fmt.Errorf("%w: comment cannot exceed %d characters", ErrValidation, MaxCommentLen)
	}

	next, ok := NextLevel(app.Type, app.CurrentLevel)
	if !ok {
		// current level not in this type's chain — corrupt record, refuse
		return Effect{}, fmt.Errorf("%w: level %q not in %s chain", ErrInvalidTransition, app.CurrentLevel, app.Type)
	}

	rec := app.ApprovalFor(actor.Role)
	if rec == nil {
		app.Approvals = append(app.Approvals, models.Approval{
			ApplicationID: app.ID,
			Role:          actor.Role,
		})
		rec = &app.Approvals[len(app.Approvals)-1]
	}
	approverID := actor.ID
	approvedAt := now
	rec.Approved = true
	rec.ApproverID = &approverID
	rec.ApprovedAt = &approvedAt
	rec.Comment = comment

	app.CurrentLevel = next
	if next == models.LevelCompleted {
		app.Status = models.StatusApproved
		return Effect{Kind: EffectFinalApproval}, nil
	}
	return Effect{Kind: EffectForward, NextLevel: next}, nil
}

func reject(app *models.Application, actor Actor, reason string, now time.Time) (Effect, error) {
	reason = strings.TrimSpace(reason)
	if len(reason) < MinRejectionReasonLen || len(reason) > MaxRejectionReasonLen {
		return Effect{}, fmt.Errorf("%w: rejection reason must be between %d and %d characters",
			ErrValidation, MinRejectionReasonLen, MaxRejectionReasonLen)
	}

	rejectedBy := actor.ID
	rejectedAt := now
	app.Status = models.StatusRejected
	app.RejectedByID = &rejectedBy
	app.RejectedAt = &rejectedAt
	app.RejectionReason = reason
	// CurrentLevel stays frozen at the level that rejected.
	return Effect{Kind: EffectFinalRejection}, nil
}
