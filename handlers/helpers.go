package handlers

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Abhi9av-Git/LeaveEase/models"
	"github.com/Abhi9av-Git/LeaveEase/workflow"
)

// atoiOr parses s or falls back to def.
func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func getUserID(c echo.Context) (uint, bool) {
	switch v := c.Get("user_id").(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	default:
		return 0, false
	}
}

// actorFromContext rebuilds the workflow actor from the JWT claims the
// auth middleware attached.
func actorFromContext(c echo.Context) workflow.Actor {
	id, _ := getUserID(c)
	role, _ := c.Get("role").(string)
	name, _ := c.Get("name").(string)
	return workflow.Actor{ID: id, Role: models.Role(role), Name: name}
}
