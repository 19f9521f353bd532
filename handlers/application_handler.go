package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/directory"
	"github.com/Abhi9av-Git/LeaveEase/models"
	"github.com/Abhi9av-Git/LeaveEase/notify"
	"github.com/Abhi9av-Git/LeaveEase/workflow"
)

// errStale: the conditional update matched no row — someone else moved
// the application first (or it was already terminal).
var errStale = errors.New("application state changed")

type ApplicationHandler struct {
	dir      *directory.Directory
	notifier *notify.Dispatcher
}

func NewApplicationHandler(dir *directory.Directory, notifier *notify.Dispatcher) *ApplicationHandler {
	return &ApplicationHandler{dir: dir, notifier: notifier}
}

/* -------------------- Submit -------------------- */

type submitApplicationReq struct {
	ApplicationType    string     `json:"application_type"`
	InitialTime        *time.Time `json:"initial_time"`
	ExpectedReturnTime *time.Time `json:"expected_return_time"`
	JourneyDate        *time.Time `json:"journey_date"`
	ReturnDate         *time.Time `json:"return_date"`
	Reason             string     `json:"reason"`
	Address            string     `json:"address"`
	Attendance         float64    `json:"attendance"`
	LastSemesterSGPA   float64    `json:"last_semester_sgpa"`
	CounsellorEmail    string     `json:"counsellor_email"`
	HODEmail           string     `json:"hod_email"`
	WardenEmail        string     `json:"warden_email"`
}

func (r *submitApplicationReq) validate() (models.ApplicationType, string) {
	t := models.ApplicationType(strings.TrimSpace(r.ApplicationType))
	if !t.Valid() {
		return "", "Invalid application type"
	}
	r.Reason = strings.TrimSpace(r.Reason)
	r.Address = strings.TrimSpace(r.Address)
	if n := len(r.Reason); n < 10 || n > 500 {
		return "", "Reason must be between 10 and 500 characters"
	}
	if n := len(r.Address); n < 10 || n > 200 {
		return "", "Address must be between 10 and 200 characters"
	}
	if r.Attendance < 0 || r.Attendance > 100 {
		return "", "Attendance must be between 0 and 100"
	}
	if r.LastSemesterSGPA < 0 || r.LastSemesterSGPA > 10 {
		return "", "SGPA must be between 0 and 10"
	}
	if r.CounsellorEmail == "" {
		return "", "Counsellor email is required"
	}
	if r.WardenEmail == "" {
		return "", "Warden email is required"
	}

	switch t {
	case models.TypeOutpass:
		if r.InitialTime == nil || r.ExpectedReturnTime == nil {
			return "", "Initial time and expected return time are required for outpass applications"
		}
		if !r.ExpectedReturnTime.After(*r.InitialTime) {
			return "", "Expected return time must be after initial time"
		}
	case models.TypeLeave:
		if r.HODEmail == "" {
			return "", "HOD email is required for leave applications"
		}
		if r.JourneyDate == nil || r.ReturnDate == nil {
			return "", "Journey date and return date are required for leave applications"
		}
		if !r.ReturnDate.After(*r.JourneyDate) {
			return "", "Return date must be after journey date"
		}
	}
	return t, ""
}

// POST /applications
func (h *ApplicationHandler) Submit(c echo.Context) error {
	studentID, ok := getUserID(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	appType, msg := req.validate()
	if msg != "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": msg})
	}

	var student models.Student
	if err := database.DB.First(&student, studentID).Error; err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, map[string]any{"error": "INVALID_TOKEN"})
	}

	// Resolve the named approvers against active staff accounts; the
	// emails are stored as a snapshot and never re-resolved afterwards.
	counsellor, err := h.dir.ResolveApprover(models.RoleCounsellor, req.CounsellorEmail)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Invalid counsellor email. Please check and try again."})
	}
	warden, err := h.dir.ResolveApprover(models.RoleWarden, req.WardenEmail)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Invalid warden email. Please check and try again."})
	}
	snapshot := []models.Approver{*counsellor, *warden}
	var hod *models.Approver
	if appType == models.TypeLeave {
		hod, err = h.dir.ResolveApprover(models.RoleHOD, req.HODEmail)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Invalid HOD email. Please check and try again."})
		}
		snapshot = append(snapshot, *hod)
	}

	// Friendly pre-check; the partial unique index is what actually
	// guarantees the one-pending rule under races.
	var pending int64
	database.DB.Model(&models.Application{}).
		Where("student_id = ? AND status = ?", studentID, models.StatusPending).
		Count(&pending)
	if pending > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "PENDING_EXISTS",
			"message": "You already have a pending application. Please wait for it to be processed.",
		})
	}

	app := models.Application{
		RefCode:          uuid.NewString(),
		StudentID:        studentID,
		Type:             appType,
		CounsellorEmail:  counsellor.Email,
		WardenEmail:      warden.Email,
		Reason:           req.Reason,
		Address:          req.Address,
		Attendance:       req.Attendance,
		LastSemesterSGPA: req.LastSemesterSGPA,
		Status:           models.StatusPending,
		CurrentLevel:     models.LevelCounsellor,
	}
	if appType == models.TypeOutpass {
		app.InitialTime = req.InitialTime
		app.ExpectedReturnTime = req.ExpectedReturnTime
	} else {
		app.HODEmail = hod.Email
		app.JourneyDate = req.JourneyDate
		app.ReturnDate = req.ReturnDate
	}
	for _, role := range workflow.ChainFor(appType) {
		app.Approvals = append(app.Approvals, models.Approval{Role: role})
	}

	if err := database.DB.Create(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost the race against a concurrent submission
			return c.JSON(http.StatusBadRequest, map[string]any{
				"error":   "PENDING_EXISTS",
				"message": "You already have a pending application. Please wait for it to be processed.",
			})
		}
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	h.notifier.ApplicationSubmitted(&app, &student, snapshot)

	return c.JSON(http.StatusCreated, map[string]any{
		"message":     "Application submitted successfully",
		"application": app,
	})
}

/* -------------------- List / Get -------------------- */

// GET /applications?page=&limit=
// Students see their own; approvers see pending applications at their level.
func (h *ApplicationHandler) List(c echo.Context) error {
	actor := actorFromContext(c)

	page := atoiOr(c.QueryParam("page"), 1)
	limit := atoiOr(c.QueryParam("limit"), 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	tx := database.DB.Model(&models.Application{})
	if actor.Role == models.RoleStudent {
		tx = tx.Where("student_id = ?", actor.ID)
	} else {
		tx = tx.Where("current_level = ? AND status = ?", models.Level(actor.Role), models.StatusPending)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var rows []models.Application
	err := tx.Preload("Student").Preload("Approvals").
		Order("submitted_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(http.StatusOK, map[string]any{
		"applications": rows,
		"count":        len(rows),
		"total":        total,
		"pagination": map[string]any{
			"current": page,
			"pages":   pages,
			"hasNext": int64(page*limit) < total,
			"hasPrev": page > 1,
		},
	})
}

// GET /applications/:id
func (h *ApplicationHandler) GetByID(c echo.Context) error {
	actor := actorFromContext(c)

	var app models.Application
	err := database.DB.Preload("Student").Preload("Approvals").
		First(&app, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	if err := workflow.CanAct(actor, &app, workflow.ActionView); err != nil {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}
	return c.JSON(http.StatusOK, map[string]any{"application": app})
}

/* -------------------- Decisions -------------------- */

type decisionReq struct {
	Comment         string `json:"comment"`
	RejectionReason string `json:"rejection_reason"`
}

// PUT /applications/:id/approve
func (h *ApplicationHandler) Approve(c echo.Context) error {
	var body decisionReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	return h.decide(c, workflow.DecisionApprove, body.Comment)
}

// PUT /applications/:id/reject
func (h *ApplicationHandler) Reject(c echo.Context) error {
	var body decisionReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	return h.decide(c, workflow.DecisionReject, body.RejectionReason)
}

// PUT /applications/:id/cancel
func (h *ApplicationHandler) Cancel(c echo.Context) error {
	return h.decide(c, workflow.DecisionCancel, "")
}

// decide runs the workflow engine on the loaded application, then commits
// the computed state with a compare-and-swap on (status, current_level).
// Of two racing decisions at the same level exactly one lands; the loser
// sees INVALID_TRANSITION and the record is untouched.
func (h *ApplicationHandler) decide(c echo.Context, decision workflow.Decision, comment string) error {
	actor := actorFromContext(c)

	var app models.Application
	err := database.DB.Preload("Student").Preload("Approvals").
		First(&app, "id = ?", c.Param("id")).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	prevLevel := app.CurrentLevel
	now := time.Now()

	eff, err := workflow.Transition(&app, actor, decision, comment, now)
	if err != nil {
		return transitionError(c, err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{
			"status":        app.Status,
			"current_level": app.CurrentLevel,
			"updated_at":    now,
		}
		if decision == workflow.DecisionReject {
			updates["rejected_by_id"] = app.RejectedByID
			updates["rejected_at"] = app.RejectedAt
			updates["rejection_reason"] = app.RejectionReason
		}

		res := tx.Model(&models.Application{}).
			Where("id = ? AND status = ? AND current_level = ?", app.ID, models.StatusPending, prevLevel).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errStale
		}

		if decision == workflow.DecisionApprove {
			rec := app.ApprovalFor(actor.Role)
			return tx.Model(&models.Approval{}).
				Where("application_id = ? AND role = ?", app.ID, actor.Role).
				Updates(map[string]any{
					"approved":    true,
					"approver_id": rec.ApproverID,
					"approved_at": rec.ApprovedAt,
					"comment":     rec.Comment,
				}).Error
		}
		return nil
	})
	if errors.Is(err, errStale) {
		return c.JSON(http.StatusConflict, map[string]any{"error": "INVALID_TRANSITION", "message": "Application state has already changed"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	// Best-effort fan-out after the commit; failures are logged inside
	// the dispatcher, never surfaced here.
	h.notifier.TransitionCommitted(&app, app.Student, eff, actor.Name, strings.TrimSpace(comment))

	return c.JSON(http.StatusOK, map[string]any{
		"message":     decisionMessage(decision),
		"application": app,
	})
}

func decisionMessage(d workflow.Decision) string {
	switch d {
	case workflow.DecisionApprove:
		return "Application approved successfully"
	case workflow.DecisionReject:
		return "Application rejected successfully"
	default:
		return "Application cancelled successfully"
	}
}

func transitionError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, workflow.ErrForbidden):
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN", "message": err.Error()})
	case errors.Is(err, workflow.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, map[string]any{"error": "INVALID_TRANSITION", "message": err.Error()})
	case errors.Is(err, workflow.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": err.Error()})
	default:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
}
