package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/directory"
	"github.com/Abhi9av-Git/LeaveEase/models"
	"github.com/Abhi9av-Git/LeaveEase/notify"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	database.DB = db
	return db
}

func newAppHandler(db *gorm.DB) *ApplicationHandler {
	dir := directory.New(db)
	return NewApplicationHandler(dir, notify.NewDispatcher(dir, nil, nil, nil))
}

func seedStudent(t *testing.T, db *gorm.DB, email, regNo string) models.Student {
	t.Helper()
	s := models.Student{
		Name: "Asha", Email: email, Password: "x", Mobile: "9000000010",
		ParentMobile: "9000000011", RegistrationNo: regNo,
		Year: "Second Year", Branch: "Computer Science", Hostel: "A", Flank: "East",
		IsActive: true,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("seed student: %v", err)
	}
	return s
}

func seedApprover(t *testing.T, db *gorm.DB, role models.Role, email string) models.Approver {
	t.Helper()
	a := models.Approver{
		Name: string(role) + " One", Email: email, Password: "x",
		Mobile: "9000000020", Role: role, IsActive: true,
	}
	if err := db.Create(&a).Error; err != nil {
		t.Fatalf("seed approver: %v", err)
	}
	return a
}

func seedAllApprovers(t *testing.T, db *gorm.DB) map[models.Role]models.Approver {
	t.Helper()
	out := map[models.Role]models.Approver{}
	for _, r := range models.ApproverRoles {
		out[r] = seedApprover(t, db, r, string(r)+"@college.edu")
	}
	return out
}

// ctxFor builds an echo context carrying the JWT claims the middleware
// would have attached.
func ctxFor(t *testing.T, method, path string, body any, userID uint, role models.Role, name string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *strings.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(b))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", string(role))
	c.Set("name", name)
	return c, rec
}

func submitLeaveBody(counsellor, hod, warden string) map[string]any {
	journey := time.Now().Add(48 * time.Hour)
	ret := journey.Add(5 * 24 * time.Hour)
	return map[string]any{
		"application_type":   "leave",
		"journey_date":       journey,
		"return_date":        ret,
		"reason":             "attending my sister's wedding at home",
		"address":            "12 MG Road, Pune, Maharashtra",
		"attendance":         82.5,
		"last_semester_sgpa": 8.1,
		"counsellor_email":   counsellor,
		"hod_email":          hod,
		"warden_email":       warden,
	}
}

func submitOutpassBody(counsellor, warden string) map[string]any {
	start := time.Now().Add(3 * time.Hour)
	back := start.Add(6 * time.Hour)
	return map[string]any{
		"application_type":     "outpass",
		"initial_time":         start,
		"expected_return_time": back,
		"reason":               "visiting the city hospital for a checkup",
		"address":              "City Hospital, Station Road, Pune",
		"attendance":           91.0,
		"last_semester_sgpa":   7.4,
		"counsellor_email":     counsellor,
		"warden_email":         warden,
	}
}

func decide(t *testing.T, h *ApplicationHandler, appID uint, actor models.Approver, action string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := ctxFor(t, http.MethodPut, "/applications/:id/"+action, body, actor.ID, actor.Role, actor.Name)
	c.SetParamNames("id")
	c.SetParamValues(strconv.Itoa(int(appID)))
	var err error
	if action == "approve" {
		err = h.Approve(c)
	} else {
		err = h.Reject(c)
	}
	if err != nil {
		t.Fatalf("%s returned error: %v", action, err)
	}
	return rec
}

/* -------------------- Submit -------------------- */

func TestSubmitLeaveApplication(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, rec := ctxFor(t, http.MethodPost, "/applications",
		submitLeaveBody("counsellor@college.edu", "hod@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var app models.Application
	if err := db.Preload("Approvals").First(&app, "student_id = ?", student.ID).Error; err != nil {
		t.Fatalf("application not persisted: %v", err)
	}
	if app.Status != models.StatusPending {
		t.Errorf("expected pending, got %s", app.Status)
	}
	if app.CurrentLevel != models.LevelCounsellor {
		t.Errorf("expected counsellor level, got %s", app.CurrentLevel)
	}
	if len(app.Approvals) != 4 {
		t.Errorf("expected 4 approval records for leave, got %d", len(app.Approvals))
	}
	for _, rec := range app.Approvals {
		if rec.Approved {
			t.Errorf("approval for %s should start unapproved", rec.Role)
		}
	}
	if app.RefCode == "" {
		t.Error("expected a ref code")
	}
}

func TestSubmitSecondPendingRejected(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	seedAllApprovers(t, db)
	h := newAppHandler(db)

	body := submitOutpassBody("counsellor@college.edu", "warden@college.edu")
	c, rec := ctxFor(t, http.MethodPost, "/applications", body, student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("first submit: expected 201, got %d", rec.Code)
	}

	c, rec = ctxFor(t, http.MethodPost, "/applications", body, student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for second pending submission, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "PENDING_EXISTS") {
		t.Errorf("expected PENDING_EXISTS, got %s", rec.Body.String())
	}

	var n int64
	db.Model(&models.Application{}).Where("student_id = ?", student.ID).Count(&n)
	if n != 1 {
		t.Errorf("expected exactly one application, found %d", n)
	}
}

func TestSubmitValidation(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	seedAllApprovers(t, db)
	h := newAppHandler(db)

	cases := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"short reason", func(m map[string]any) { m["reason"] = "too short" }},
		{"attendance out of range", func(m map[string]any) { m["attendance"] = 104.0 }},
		{"sgpa out of range", func(m map[string]any) { m["last_semester_sgpa"] = 11.0 }},
		{"unknown counsellor", func(m map[string]any) { m["counsellor_email"] = "nobody@college.edu" }},
		{"missing hod for leave", func(m map[string]any) { m["hod_email"] = "" }},
		{"return before journey", func(m map[string]any) {
			m["journey_date"] = time.Now().Add(72 * time.Hour)
			m["return_date"] = time.Now().Add(24 * time.Hour)
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := submitLeaveBody("counsellor@college.edu", "hod@college.edu", "warden@college.edu")
			tc.mutate(body)
			c, rec := ctxFor(t, http.MethodPost, "/applications", body, student.ID, models.RoleStudent, student.Name)
			if err := h.Submit(c); err != nil {
				t.Fatalf("submit: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var n int64
			db.Model(&models.Application{}).Count(&n)
			if n != 0 {
				t.Errorf("no application should have been created, found %d", n)
			}
		})
	}
}

/* -------------------- Decisions -------------------- */

func TestLeaveApprovalChain(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitLeaveBody("counsellor@college.edu", "hod@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}

	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	steps := []struct {
		role  models.Role
		level models.Level // expected after the approval
	}{
		{models.RoleCounsellor, models.LevelHOD},
		{models.RoleHOD, models.LevelJointDirector},
		{models.RoleJointDirector, models.LevelWarden},
		{models.RoleWarden, models.LevelCompleted},
	}

	for _, step := range steps {
		rec := decide(t, h, app.ID, approvers[step.role], "approve", map[string]any{"comment": "ok"})
		if rec.Code != http.StatusOK {
			t.Fatalf("approve at %s: expected 200, got %d: %s", step.role, rec.Code, rec.Body.String())
		}
		var cur models.Application
		db.Preload("Approvals").First(&cur, app.ID)
		if cur.CurrentLevel != step.level {
			t.Fatalf("after %s approval expected level %s, got %s", step.role, step.level, cur.CurrentLevel)
		}
		ar := cur.ApprovalFor(step.role)
		if ar == nil || !ar.Approved {
			t.Fatalf("approval record for %s not persisted", step.role)
		}
		if step.level != models.LevelCompleted && cur.Status != models.StatusPending {
			t.Fatalf("status should stay pending mid-chain, got %s", cur.Status)
		}
	}

	var final models.Application
	db.First(&final, app.ID)
	if final.Status != models.StatusApproved {
		t.Errorf("expected approved, got %s", final.Status)
	}
}

func TestOutpassRejectFreezesLevel(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	rec := decide(t, h, app.ID, approvers[models.RoleCounsellor], "reject",
		map[string]any{"rejection_reason": "insufficient notice"})
	if rec.Code != http.StatusOK {
		t.Fatalf("reject: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cur models.Application
	db.First(&cur, app.ID)
	if cur.Status != models.StatusRejected {
		t.Errorf("expected rejected, got %s", cur.Status)
	}
	if cur.CurrentLevel != models.LevelCounsellor {
		t.Errorf("level must stay frozen at counsellor, got %s", cur.CurrentLevel)
	}
	if cur.RejectionReason != "insufficient notice" {
		t.Errorf("unexpected rejection reason %q", cur.RejectionReason)
	}
	if cur.RejectedByID == nil || *cur.RejectedByID != approvers[models.RoleCounsellor].ID {
		t.Errorf("rejected_by not recorded")
	}

	// no further transitions possible
	rec = decide(t, h, app.ID, approvers[models.RoleWarden], "approve", nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 after terminal state, got %d", rec.Code)
	}
}

func TestRejectReasonTooShortNoMutation(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var before models.Application
	db.First(&before, "student_id = ?", student.ID)

	rec := decide(t, h, before.ID, approvers[models.RoleCounsellor], "reject",
		map[string]any{"rejection_reason": "no"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for short reason, got %d", rec.Code)
	}

	var after models.Application
	db.First(&after, before.ID)
	if after.Status != before.Status || after.CurrentLevel != before.CurrentLevel || after.RejectionReason != "" {
		t.Errorf("record mutated by failed rejection: %+v", after)
	}
}

func TestApproveAtWrongLevelNoMutation(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitLeaveBody("counsellor@college.edu", "hod@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var before models.Application
	db.First(&before, "student_id = ?", student.ID)

	// warden acts while the application is at counsellor level
	rec := decide(t, h, before.ID, approvers[models.RoleWarden], "approve", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
	}

	// hod has no say on outpass-type levels either — and here, not yet
	rec = decide(t, h, before.ID, approvers[models.RoleHOD], "approve", nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for hod, got %d", rec.Code)
	}

	var after models.Application
	db.Preload("Approvals").First(&after, before.ID)
	if after.Status != before.Status || after.CurrentLevel != before.CurrentLevel {
		t.Errorf("record mutated by forbidden approval")
	}
	for _, ar := range after.Approvals {
		if ar.Approved {
			t.Errorf("approval for %s recorded despite forbidden call", ar.Role)
		}
	}
}

func TestHODCannotActOnOutpass(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	rec := decide(t, h, app.ID, approvers[models.RoleHOD], "approve", nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("hod acting on outpass: expected 403, got %d", rec.Code)
	}
}

/* -------------------- Cancel -------------------- */

func TestCancel(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	other := seedStudent(t, db, "ravi@college.edu", "REG002")
	seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	cancel := func(userID uint, name string) *httptest.ResponseRecorder {
		c, rec := ctxFor(t, http.MethodPut, "/applications/:id/cancel", nil, userID, models.RoleStudent, name)
		c.SetParamNames("id")
		c.SetParamValues(strconv.Itoa(int(app.ID)))
		if err := h.Cancel(c); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		return rec
	}

	if rec := cancel(other.ID, other.Name); rec.Code != http.StatusForbidden {
		t.Fatalf("someone else's cancel: expected 403, got %d", rec.Code)
	}
	if rec := cancel(student.ID, student.Name); rec.Code != http.StatusOK {
		t.Fatalf("owner cancel: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var cur models.Application
	db.First(&cur, app.ID)
	if cur.Status != models.StatusCancelled {
		t.Errorf("expected cancelled, got %s", cur.Status)
	}

	if rec := cancel(student.ID, student.Name); rec.Code != http.StatusConflict {
		t.Errorf("double cancel: expected 409, got %d", rec.Code)
	}

	// a cancelled application no longer blocks a new submission
	c, rec := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("resubmit after cancel: expected 201, got %d", rec.Code)
	}
}

/* -------------------- Concurrency -------------------- */

// Two approvals race on the same level: the conditional update commits
// exactly one of them.
func TestConcurrentApprovalCAS(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	cas := func() int64 {
		res := db.Model(&models.Application{}).
			Where("id = ? AND status = ? AND current_level = ?", app.ID, models.StatusPending, models.LevelCounsellor).
			Updates(map[string]any{"current_level": models.LevelWarden})
		if res.Error != nil {
			t.Fatalf("cas update: %v", res.Error)
		}
		return res.RowsAffected
	}

	first, second := cas(), cas()
	if first != 1 {
		t.Fatalf("first CAS should win, affected %d", first)
	}
	if second != 0 {
		t.Fatalf("second CAS must lose, affected %d", second)
	}

	var cur models.Application
	db.First(&cur, app.ID)
	if cur.CurrentLevel != models.LevelWarden {
		t.Errorf("level advanced twice or not at all: %s", cur.CurrentLevel)
	}
}

// The handler path of the same race: a duplicate approve after the state
// moved reports INVALID_TRANSITION, not a second advance.
func TestDuplicateApproveAfterAdvance(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	if rec := decide(t, h, app.ID, approvers[models.RoleCounsellor], "approve", nil); rec.Code != http.StatusOK {
		t.Fatalf("first approve: %d", rec.Code)
	}
	// same counsellor fires again; the application moved to warden level
	rec := decide(t, h, app.ID, approvers[models.RoleCounsellor], "approve", nil)
	if rec.Code != http.StatusForbidden && rec.Code != http.StatusConflict {
		t.Fatalf("duplicate approve: expected 403/409, got %d", rec.Code)
	}

	var cur models.Application
	db.First(&cur, app.ID)
	if cur.CurrentLevel != models.LevelWarden {
		t.Errorf("duplicate call must not advance the chain, level is %s", cur.CurrentLevel)
	}
}

/* -------------------- List / Get -------------------- */

func TestListScopedByRole(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	other := seedStudent(t, db, "ravi@college.edu", "REG002")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	for _, s := range []models.Student{student, other} {
		c, rec := ctxFor(t, http.MethodPost, "/applications",
			submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
			s.ID, models.RoleStudent, s.Name)
		if err := h.Submit(c); err != nil || rec.Code != http.StatusCreated {
			t.Fatalf("submit for %s: err=%v code=%d", s.Email, err, rec.Code)
		}
	}

	list := func(userID uint, role models.Role) map[string]any {
		c, rec := ctxFor(t, http.MethodGet, "/applications", nil, userID, role, "x")
		if err := h.List(c); err != nil {
			t.Fatalf("list: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("list: expected 200, got %d", rec.Code)
		}
		var out map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode list: %v", err)
		}
		return out
	}

	if out := list(approvers[models.RoleCounsellor].ID, models.RoleCounsellor); out["total"].(float64) != 2 {
		t.Errorf("counsellor should see both pending applications, got %v", out["total"])
	}
	if out := list(approvers[models.RoleWarden].ID, models.RoleWarden); out["total"].(float64) != 0 {
		t.Errorf("warden should see none at counsellor level, got %v", out["total"])
	}
	if out := list(student.ID, models.RoleStudent); out["total"].(float64) != 1 {
		t.Errorf("student should see only their own, got %v", out["total"])
	}
}

func TestGetByIDAccess(t *testing.T) {
	db := setupTestDB(t)
	student := seedStudent(t, db, "asha@college.edu", "REG001")
	other := seedStudent(t, db, "ravi@college.edu", "REG002")
	approvers := seedAllApprovers(t, db)
	h := newAppHandler(db)

	c, _ := ctxFor(t, http.MethodPost, "/applications",
		submitOutpassBody("counsellor@college.edu", "warden@college.edu"),
		student.ID, models.RoleStudent, student.Name)
	if err := h.Submit(c); err != nil {
		t.Fatalf("submit: %v", err)
	}
	var app models.Application
	db.First(&app, "student_id = ?", student.ID)

	get := func(userID uint, role models.Role, id string) *httptest.ResponseRecorder {
		c, rec := ctxFor(t, http.MethodGet, "/applications/:id", nil, userID, role, "x")
		c.SetParamNames("id")
		c.SetParamValues(id)
		if err := h.GetByID(c); err != nil {
			t.Fatalf("get: %v", err)
		}
		return rec
	}

	appID := strconv.Itoa(int(app.ID))
	if rec := get(student.ID, models.RoleStudent, appID); rec.Code != http.StatusOK {
		t.Errorf("owner read: expected 200, got %d", rec.Code)
	}
	if rec := get(other.ID, models.RoleStudent, appID); rec.Code != http.StatusForbidden {
		t.Errorf("other student read: expected 403, got %d", rec.Code)
	}
	if rec := get(approvers[models.RoleWarden].ID, models.RoleWarden, appID); rec.Code != http.StatusOK {
		t.Errorf("approver read: expected 200, got %d", rec.Code)
	}
	if rec := get(student.ID, models.RoleStudent, "99999"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: expected 404, got %d", rec.Code)
	}
}
