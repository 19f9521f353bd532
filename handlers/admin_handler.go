package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Abhi9av-Git/LeaveEase/database"
	"github.com/Abhi9av-Git/LeaveEase/models"
)

type AdminHandler struct{}

func NewAdminHandler() *AdminHandler { return &AdminHandler{} }

// levelScope narrows queries to the caller's level. Wardens see all
// applications (they close every chain), everyone else sees their level.
func levelScope(tx *gorm.DB, role models.Role) *gorm.DB {
	if role != models.RoleWarden {
		return tx.Where("current_level = ?", models.Level(role))
	}
	return tx
}

// GET /admin/dashboard
func (h *AdminHandler) Dashboard(c echo.Context) error {
	actor := actorFromContext(c)

	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	startOfWeek := startOfDay.AddDate(0, 0, -int(now.Weekday()))
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	count := func(cond string, args ...any) int64 {
		var n int64
		tx := levelScope(database.DB.Model(&models.Application{}), actor.Role)
		if cond != "" {
			tx = tx.Where(cond, args...)
		}
		tx.Count(&n)
		return n
	}

	var recent []models.Application
	if err := levelScope(database.DB.Model(&models.Application{}), actor.Role).
		Preload("Student").
		Order("created_at DESC").Limit(5).
		Find(&recent).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": map[string]any{
			"pendingApplications": count("status = ?", models.StatusPending),
			"todayApplications":   count("created_at >= ?", startOfDay),
			"weekApplications":    count("created_at >= ?", startOfWeek),
			"monthApplications":   count("created_at >= ?", startOfMonth),
			"leaveApplications":   count("type = ?", models.TypeLeave),
			"outpassApplications": count("type = ?", models.TypeOutpass),
			"recentApplications":  recent,
		},
	})
}

// GET /admin/statistics — per-type and per-status rollups at the caller's level.
func (h *AdminHandler) Statistics(c echo.Context) error {
	actor := actorFromContext(c)

	type typeRow struct {
		Type     models.ApplicationType `json:"type"`
		Count    int64                  `json:"count"`
		Approved int64                  `json:"approved"`
		Rejected int64                  `json:"rejected"`
	}
	var typeStats []typeRow
	err := levelScope(database.DB.Model(&models.Application{}), actor.Role).
		Select(`type,
			COUNT(*) AS count,
			SUM(CASE WHEN status = 'approved' THEN 1 ELSE 0 END) AS approved,
			SUM(CASE WHEN status = 'rejected' THEN 1 ELSE 0 END) AS rejected`).
		Group("type").
		Scan(&typeStats).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	type statusRow struct {
		Status models.Status `json:"status"`
		Count  int64         `json:"count"`
	}
	var statusStats []statusRow
	err = levelScope(database.DB.Model(&models.Application{}), actor.Role).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&statusStats).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	type levelRow struct {
		CurrentLevel models.Level `json:"current_level"`
		Count        int64        `json:"count"`
	}
	var levelStats []levelRow
	err = database.DB.Model(&models.Application{}).
		Where("status = ?", models.StatusPending).
		Select("current_level, COUNT(*) AS count").
		Group("current_level").
		Scan(&levelStats).Error
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"data": map[string]any{
			"typeStats":   typeStats,
			"statusStats": statusStats,
			"levelStats":  levelStats,
		},
	})
}

// GET /admin/applications?status=&type=&from=&to=&q=&page=&limit=
// Filtered listing across the caller's level (all levels for wardens).
func (h *AdminHandler) Applications(c echo.Context) error {
	actor := actorFromContext(c)

	status := strings.TrimSpace(c.QueryParam("status"))
	typ := strings.TrimSpace(c.QueryParam("type"))
	from := strings.TrimSpace(c.QueryParam("from")) // YYYY-MM-DD
	to := strings.TrimSpace(c.QueryParam("to"))
	q := strings.TrimSpace(c.QueryParam("q")) // keyword in reason

	page := atoiOr(c.QueryParam("page"), 1)
	limit := atoiOr(c.QueryParam("limit"), 10)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	tx := levelScope(database.DB.Model(&models.Application{}), actor.Role)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	if typ != "" {
		tx = tx.Where("type = ?", typ)
	}
	if from != "" {
		tx = tx.Where("submitted_at >= ?", from)
	}
	if to != "" {
		tx = tx.Where("submitted_at < ?", to)
	}
	if q != "" {
		tx = tx.Where("reason LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": err.Error()})
	}

	var rows []models.Application
	err := tx.Preload("Student").
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
