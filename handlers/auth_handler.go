package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/models"
)

var (
	reMobile = regexp.MustCompile(`^[0-9]{10}$`)
	reEmail  = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

	validYears    = map[string]bool{"First Year": true, "Second Year": true, "Third Year": true, "Fourth Year": true}
	validBranches = map[string]bool{"Computer Science": true, "Information Technology": true, "Electronics": true, "Mechanical": true, "Civil": true, "Chemical": true}
)

type AuthHandler struct {
	JWTSecret string
}

func NewAuthHandler(secret string) *AuthHandler {
	if secret == "" {
		secret = "dev-secret" // dev fallback, set JWT_SECRET for real deployments
	}
	return &AuthHandler{JWTSecret: secret}
}

func (h *AuthHandler) signJWT(sub uint, role, name string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sub,
		"role": role,
		"name": name,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

/* ====================== DTOs ====================== */

type studentRegisterReq struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Mobile         string `json:"mobile"`
	ParentMobile   string `json:"parent_mobile"`
	RegistrationNo string `json:"registration_no"`
	Year           string `json:"year"`
	Branch         string `json:"branch"`
	Hostel         string `json:"hostel"`
	Flank          string `json:"flank"`
}

type approverRegisterReq struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Mobile     string `json:"mobile"`
	Department string `json:"department"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/* ====================== Handlers ====================== */

// POST /auth/register/student
func (h *AuthHandler) StudentRegister(c echo.Context) error {
	var req studentRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	req.Name = strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	switch {
	case len(req.Name) < 2 || len(req.Name) > 50:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Name must be between 2 and 50 characters"})
	case !reEmail.MatchString(email):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Please enter a valid email"})
	case len(req.Password) < 6:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Password must be at least 6 characters"})
	case !reMobile.MatchString(req.Mobile) || !reMobile.MatchString(req.ParentMobile):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Please enter a valid 10-digit mobile number"})
	case strings.TrimSpace(req.RegistrationNo) == "":
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Registration number is required"})
	case !validYears[req.Year]:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Invalid year"})
	case !validBranches[req.Branch]:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Invalid branch"})
	case strings.TrimSpace(req.Hostel) == "":
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Hostel is required"})
	}

	var dup models.Student
	if err := database.DB.Where("email = ? OR registration_no = ? OR mobile = ?", email, req.RegistrationNo, req.Mobile).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "USER_EXISTS", "message": "User with this email, registration number, or mobile already exists"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	student := models.Student{
		Name:           req.Name,
		Email:          email,
		Password:       string(hash),
		Mobile:         req.Mobile,
		ParentMobile:   req.ParentMobile,
		RegistrationNo: strings.TrimSpace(req.RegistrationNo),
		Year:           req.Year,
		Branch:         req.Branch,
		Hostel:         strings.TrimSpace(req.Hostel),
		Flank:          strings.TrimSpace(req.Flank),
		IsActive:       true,
		LastLogin:      time.Now(),
	}
	if err := database.DB.Create(&student).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	token, err := h.signJWT(student.ID, string(models.RoleStudent), student.Name, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"token": token, "user": student, "role": models.RoleStudent})
}

// POST /auth/register/:role — counsellor, hod, warden, joint_director
func (h *AuthHandler) ApproverRegister(c echo.Context) error {
	role := models.Role(c.Param("role"))
	if !role.IsApprover() {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_ROLE"})
	}

	var req approverRegisterReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	req.Name = strings.TrimSpace(req.Name)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	switch {
	case len(req.Name) < 2 || len(req.Name) > 50:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Name must be between 2 and 50 characters"})
	case !reEmail.MatchString(email):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Please enter a valid email"})
	case len(req.Password) < 6:
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Password must be at least 6 characters"})
	case !reMobile.MatchString(req.Mobile):
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Please enter a valid 10-digit mobile number"})
	}
	// counsellors and HODs belong to a department
	if (role == models.RoleCounsellor || role == models.RoleHOD) && !validBranches[req.Department] {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Invalid department"})
	}

	var dup models.Approver
	if err := database.DB.Where("role = ? AND email = ?", role, email).First(&dup).Error; err == nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "USER_EXISTS", "message": "An account with this email already exists"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	approver := models.Approver{
		Name:       req.Name,
		Email:      email,
		Password:   string(hash),
		Mobile:     req.Mobile,
		Role:       role,
		Department: req.Department,
		IsActive:   true,
		LastLogin:  time.Now(),
	}
	if err := database.DB.Create(&approver).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	token, err := h.signJWT(approver.ID, string(role), approver.Name, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
	}
	return c.JSON(http.StatusCreated, map[string]any{"token": token, "user": approver, "role": role})
}

// POST /auth/login — one endpoint for every role; the student table is
// checked first, then the approver table (original portal behavior).
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	now := time.Now()

	var student models.Student
	if err := database.DB.Where("email = ?", email).First(&student).Error; err == nil {
		if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
			return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS", "message": "Invalid email or password"})
		}
		if !student.IsActive {
			return c.JSON(http.StatusUnauthorized, map[string]any{"error": "ACCOUNT_DEACTIVATED"})
		}
		database.DB.Model(&student).Update("last_login", now)
		token, err := h.signJWT(student.ID, string(models.RoleStudent), student.Name, 7*24*time.Hour)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
		}
		return c.JSON(http.StatusOK, map[string]any{"token": token, "user": student, "role": models.RoleStudent})
	}

	var approver models.Approver
	err := database.DB.Where("email = ?", email).First(&approver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS", "message": "Invalid email or password"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	if bcrypt.CompareHashAndPassword([]byte(approver.Password), []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS", "message": "Invalid email or password"})
	}
	if !approver.IsActive {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "ACCOUNT_DEACTIVATED"})
	}
	database.DB.Model(&approver).Update("last_login", now)
	token, err := h.signJWT(approver.ID, string(approver.Role), approver.Name, 7*24*time.Hour)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"error": "TOKEN_SIGN_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{"token": token, "user": approver, "role": approver.Role})
}

// GET /auth/me
func (h *AuthHandler) Me(c echo.Context) error {
	actor := actorFromContext(c)

	if actor.Role == models.RoleStudent {
		var student models.Student
		if err := database.DB.First(&student, actor.ID).Error; err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusOK, map[string]any{"user": student, "role": actor.Role})
	}

	var approver models.Approver
	if err := database.DB.First(&approver, actor.ID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": approver, "role": approver.Role})
}

type updateProfileReq struct {
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// PUT /auth/update-profile — name/mobile only; email and role are fixed.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	actor := actorFromContext(c)

	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(req.Name); name != "" {
		if len(name) < 2 || len(name) > 50 {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Name must be between 2 and 50 characters"})
		}
		updates["name"] = name
	}
	if req.Mobile != "" {
		if !reMobile.MatchString(req.Mobile) {
			return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Please enter a valid 10-digit mobile number"})
		}
		updates["mobile"] = req.Mobile
	}
	if len(updates) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "MISSING_FIELDS"})
	}

	var err error
	if actor.Role == models.RoleStudent {
		err = database.DB.Model(&models.Student{}).Where("id = ?", actor.ID).Updates(updates).Error
	} else {
		err = database.DB.Model(&models.Approver{}).Where("id = ?", actor.ID).Updates(updates).Error
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Profile updated successfully"})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// PUT /auth/change-password
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	actor := actorFromContext(c)

	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}
	if len(req.NewPassword) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_FAILED", "message": "Password must be at least 6 characters"})
	}

	var currentHash string
	if actor.Role == models.RoleStudent {
		var s models.Student
		if err := database.DB.First(&s, actor.ID).Error; err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		currentHash = s.Password
	} else {
		var a models.Approver
		if err := database.DB.First(&a, actor.ID).Error; err != nil {
			return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
		}
		currentHash = a.Password
	}

	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.CurrentPassword)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"error": "INVALID_CREDENTIALS", "message": "Current password is incorrect"})
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	var err error
	if actor.Role == models.RoleStudent {
		err = database.DB.Model(&models.Student{}).Where("id = ?", actor.ID).Update("password", string(hash)).Error
	} else {
		err = database.DB.Model(&models.Approver{}).Where("id = ?", actor.ID).Update("password", string(hash)).Error
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Password changed successfully"})
}
