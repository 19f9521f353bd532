package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/models"
)

type UserHandler struct{}

func NewUserHandler() *UserHandler { return &UserHandler{} }

// GET /users/profile/:id — student profile; students may only read their own.
func (h *UserHandler) Profile(c echo.Context) error {
	actor := actorFromContext(c)
	id := uint(atoiOr(c.Param("id"), 0))

	if actor.Role == models.RoleStudent && actor.ID != id {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	var student models.Student
	err := database.DB.First(&student, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]any{"error": "NOT_FOUND"})
	}
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"user": student})
}

// GET /users/:id/applications — a student's application history.
func (h *UserHandler) Applications(c echo.Context) error {
	actor := actorFromContext(c)
	id := uint(atoiOr(c.Param("id"), 0))

	if actor.Role == models.RoleStudent && actor.ID != id {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	page := atoiOr(c.QueryParam("page"), 1)
	limit := atoiOr(c.QueryParam("limit"), 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	tx := database.DB.Model(&models.Application{}).Where("student_id = ?", id)

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var rows []models.Application
	err := tx.Preload("Approvals").
		Order("submitted_at DESC, id DESC").
		Offset((page - 1) * limit).Limit(limit).
		Find(&rows).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"applications": rows,
		"count":        len(rows),
		"total":        total,
	})
}

// GET /users/:id/statistics — per-student counts by status and type.
func (h *UserHandler) Statistics(c echo.Context) error {
	actor := actorFromContext(c)
	id := uint(atoiOr(c.Param("id"), 0))

	if actor.Role == models.RoleStudent && actor.ID != id {
		return c.JSON(http.StatusForbidden, map[string]any{"error": "FORBIDDEN"})
	}

	count := func(cond string, args ...any) int64 {
		var n int64
		database.DB.Model(&models.Application{}).
			Where("student_id = ?", id).Where(cond, args...).Count(&n)
		return n
	}

	var total int64
	database.DB.Model(&models.Application{}).Where("student_id = ?", id).Count(&total)

	return c.JSON(http.StatusOK, map[string]any{
		"statistics": map[string]any{
			"totalApplications":     total,
			"approvedApplications":  count("status = ?", models.StatusApproved),
			"rejectedApplications":  count("status = ?", models.StatusRejected),
			"pendingApplications":   count("status = ?", models.StatusPending),
			"cancelledApplications": count("status = ?", models.StatusCancelled),
			"leaveApplications":     count("type = ?", models.TypeLeave),
			"outpassApplications":   count("type = ?", models.TypeOutpass),
		},
	})
}
