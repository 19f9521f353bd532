package workflow

import (
	"fmt"

	"github.com/Abhi9av-Git/LeaveEase/models"
)

// Action gated by CanAct. Submit is checked in the handler too (field
// validation); the one-pending rule is enforced by the DB constraint.
type Action string

const (
	ActionApprove Action = Action(DecisionApprove)
	ActionReject  Action = Action(DecisionReject)
	ActionCancel  Action = Action(DecisionCancel)
	ActionView    Action = "view"
)

// CanAct decides whether the actor may perform action on the application
// in its current state. It never mutates anything.
//
// Approve/reject demand exact level equality — a warden may not act at
// counsellor level even though warden is "senior". There is deliberately
// no hierarchy shortcut here.
func CanAct(actor Actor, app *models.Application, action Action) error {
	switch action {
	case ActionApprove, ActionReject:
		if !actor.Role.IsApprover() {
			return fmt.Errorf("%w: %s cannot review applications", ErrForbidden, actor.Role)
		}
		if app.Status != models.StatusPending {
			return fmt.Errorf("%w: application already %s", ErrInvalidTransition, app.Status)
		}
		if !InChain(app.Type, actor.Role) {
			return fmt.Errorf("%w: %s has no say on %s applications", ErrForbidden, actor.Role, app.Type)
		}
		if models.Level(actor.Role) != app.CurrentLevel {
			return fmt.Errorf("%w: application is not at %s level", ErrForbidden, actor.Role)
		}
		return nil

	case ActionCancel:
		if actor.Role != models.RoleStudent || actor.ID != app.StudentID {
			return fmt.Errorf("%w: only the submitter can cancel", ErrForbidden)
		}
		if app.Status != models.StatusPending {
			return fmt.Errorf("%w: application already %s", ErrInvalidTransition, app.Status)
		}
		return nil

	case ActionView:
		if actor.Role == models.RoleStudent && actor.ID != app.StudentID {
			return fmt.Errorf("%w: not your application", ErrForbidden)
		}
		return nil

	default:
		return fmt.Errorf("%w: unknown action %q", ErrValidation, action)
	}
}
