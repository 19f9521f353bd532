package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhi9av-Git/LeaveEase/models"
)

func newApplication(t models.ApplicationType) *models.Application {
	app := &models.Application{
		ID:           1,
		StudentID:    42,
		Type:         t,
		Status:       models.StatusPending,
		CurrentLevel: models.LevelCounsellor,
	}
	for _, r := range ChainFor(t) {
		app.Approvals = append(app.Approvals, models.Approval{ApplicationID: app.ID, Role: r})
	}
	return app
}

func actorFor(level models.Level) Actor {
	return Actor{ID: 100, Role: level.Role(), Name: "Reviewer"}
}

func TestLeaveChainFullApproval(t *testing.T) {
	app := newApplication(models.TypeLeave)
	now := time.Now()

	steps := []struct {
		level models.Level
		next  models.Level
		kind  EffectKind
	}{
		{models.LevelCounsellor, models.LevelHOD, EffectForward},
		{models.LevelHOD, models.LevelJointDirector, EffectForward},
		{models.LevelJointDirector, models.LevelWarden, EffectForward},
		{models.LevelWarden, models.LevelCompleted, EffectFinalApproval},
	}

	for _, step := range steps {
		require.Equal(t, step.level, app.CurrentLevel)
		eff, err := Transition(app, actorFor(step.level), DecisionApprove, "ok", now)
		require.NoError(t, err, "approval at %s", step.level)
		assert.Equal(t, step.kind, eff.Kind)
		assert.Equal(t, step.next, app.CurrentLevel)
		rec := app.ApprovalFor(step.level.Role())
		require.NotNil(t, rec)
		assert.True(t, rec.Approved)
		require.NotNil(t, rec.ApproverID)
		assert.Equal(t, uint(100), *rec.ApproverID)
	}
	assert.Equal(t, models.StatusApproved, app.Status)
}

func TestOutpassChainFullApproval(t *testing.T) {
	app := newApplication(models.TypeOutpass)
	now := time.Now()

	eff, err := Transition(app, actorFor(models.LevelCounsellor), DecisionApprove, "", now)
	require.NoError(t, err)
	assert.Equal(t, EffectForward, eff.Kind)
	assert.Equal(t, models.LevelWarden, eff.NextLevel)
	assert.Equal(t, models.StatusPending, app.Status)

	eff, err = Transition(app, actorFor(models.LevelWarden), DecisionApprove, "have a safe trip", now)
	require.NoError(t, err)
	assert.Equal(t, EffectFinalApproval, eff.Kind)
	assert.Equal(t, models.StatusApproved, app.Status)
	assert.Equal(t, models.LevelCompleted, app.CurrentLevel)
}

func TestRejectFreezesLevel(t *testing.T) {
	app := newApplication(models.TypeOutpass)

	eff, err := Transition(app, actorFor(models.LevelCounsellor), DecisionReject, "insufficient notice", time.Now())
	require.NoError(t, err)
	assert.Equal(t, EffectFinalRejection, eff.Kind)
	assert.Equal(t, models.StatusRejected, app.Status)
	assert.Equal(t, models.LevelCounsellor, app.CurrentLevel)
	assert.Equal(t, "insufficient notice", app.RejectionReason)
	require.NotNil(t, app.RejectedByID)

	// Rejection is final — nobody can act anymore.
	_, err = Transition(app, actorFor(models.LevelWarden), DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRejectReasonTooShort(t *testing.T) {
	app := newApplication(models.TypeLeave)
	before := *app

	_, err := Transition(app, actorFor(models.LevelCounsellor), DecisionReject, "no", time.Now())
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, before.Status, app.Status)
	assert.Equal(t, before.CurrentLevel, app.CurrentLevel)
	assert.Empty(t, app.RejectionReason)
}

func TestApproveAtWrongLevel(t *testing.T) {
	app := newApplication(models.TypeLeave)
	before := *app

	// Warden is senior, but the application sits at counsellor level.
	_, err := Transition(app, actorFor(models.LevelWarden), DecisionApprove, "", time.Now())
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, before.Status, app.Status)
	assert.Equal(t, before.CurrentLevel, app.CurrentLevel)
	for _, rec := range app.Approvals {
		assert.False(t, rec.Approved)
	}
}

func TestRoleOutsideChain(t *testing.T) {
	app := newApplication(models.TypeOutpass) // no HOD step

	_, err := Transition(app, Actor{ID: 7, Role: models.RoleHOD}, DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestStudentCannotApprove(t *testing.T) {
	app := newApplication(models.TypeOutpass)

	_, err := Transition(app, Actor{ID: 42, Role: models.RoleStudent}, DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApproveTerminalApplication(t *testing.T) {
	app := newApplication(models.TypeOutpass)
	app.Status = models.StatusCancelled

	_, err := Transition(app, actorFor(models.LevelCounsellor), DecisionApprove, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelOnlyBySubmitterWhilePending(t *testing.T) {
	app := newApplication(models.TypeLeave)

	_, err := Transition(app, Actor{ID: 999, Role: models.RoleStudent}, DecisionCancel, "", time.Now())
	assert.ErrorIs(t, err, ErrForbidden, "someone else's student account")

	_, err = Transition(app, Actor{ID: 100, Role: models.RoleCounsellor}, DecisionCancel, "", time.Now())
	assert.ErrorIs(t, err, ErrForbidden, "approvers cannot cancel")

	eff, err := Transition(app, Actor{ID: 42, Role: models.RoleStudent}, DecisionCancel, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, EffectNone, eff.Kind)
	assert.Equal(t, models.StatusCancelled, app.Status)

	_, err = Transition(app, Actor{ID: 42, Role: models.RoleStudent}, DecisionCancel, "", time.Now())
	assert.ErrorIs(t, err, ErrInvalidTransition, "cancel is not idempotent past terminal")
}

func TestCancelLeavesApprovalsUntouched(t *testing.T) {
	app := newApplication(models.TypeLeave)
	_, err := Transition(app, actorFor(models.LevelCounsellor), DecisionApprove, "fine by me", time.Now())
	require.NoError(t, err)

	_, err = Transition(app, Actor{ID: 42, Role: models.RoleStudent}, DecisionCancel, "", time.Now())
	require.NoError(t, err)

	rec := app.ApprovalFor(models.RoleCounsellor)
	require.NotNil(t, rec)
	assert.True(t, rec.Approved, "earlier approvals stay recorded")
	assert.Equal(t, models.LevelHOD, app.CurrentLevel, "level frozen where it was")
}

func TestNextLevel(t *testing.T) {
	next, ok := NextLevel(models.TypeOutpass, models.LevelCounsellor)
	require.True(t, ok)
	assert.Equal(t, models.LevelWarden, next)

	next, ok = NextLevel(models.TypeLeave, models.LevelWarden)
	require.True(t, ok)
	assert.Equal(t, models.LevelCompleted, next)

	_, ok = NextLevel(models.TypeOutpass, models.LevelHOD)
	assert.False(t, ok, "hod is not in the outpass chain")
}
