package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Abhi9av-Git/LeaveEase/config"
	"github.com/Abhi9av-Git/LeaveEase/directory"
	"github.com/Abhi9av-Git/LeaveEase/handlers"
	"github.com/Abhi9av-Git/LeaveEase/middlewares"
	"github.com/Abhi9av-Git/LeaveEase/models"
	"github.com/Abhi9av-Git/LeaveEase/notify"
)

// Register wires all HTTP routes.
func Register(e *echo.Echo, cfg *config.Config, dir *directory.Directory, notifier *notify.Dispatcher) {
	// ===== Handlers (shared singletons) =====
	auth := handlers.NewAuthHandler(cfg.JWTSecret)
	apps := handlers.NewApplicationHandler(dir, notifier)
	users := handlers.NewUserHandler()
	admin := handlers.NewAdminHandler()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{"status": "ok"})
	})

	// ===== Public Auth =====
	e.POST("/auth/register/student", auth.StudentRegister)
	e.POST("/auth/register/:role", auth.ApproverRegister)
	e.POST("/auth/login", auth.Login)

	authMW := middlewares.RequireAuth(cfg.JWTSecret)

	// ===== Account =====
	account := e.Group("/auth", authMW)
	account.GET("/me", auth.Me)
	account.PUT("/update-profile", auth.UpdateProfile)
	account.PUT("/change-password", auth.ChangePassword)

	// ===== Applications =====
	// Students submit/cancel; approvers decide; both list and read.
	ag := e.Group("/applications", authMW)
	ag.POST("", apps.Submit, middlewares.RequireRole(string(models.RoleStudent)))
	ag.GET("", apps.List)
	ag.GET("/:id", apps.GetByID)
	ag.PUT("/:id/approve", apps.Approve, middlewares.RequireApprover())
	ag.PUT("/:id/reject", apps.Reject, middlewares.RequireApprover())
	ag.PUT("/:id/cancel", apps.Cancel, middlewares.RequireRole(string(models.RoleStudent)))

	// ===== Users =====
	ug := e.Group("/users", authMW)
	ug.GET("/profile/:id", users.Profile)
	ug.GET("/:id/applications", users.Applications)
	ug.GET("/:id/statistics", users.Statistics)

	// ===== Admin (reviewing roles only) =====
	adm := e.Group("/admin", authMW, middlewares.RequireApprover())
	adm.GET("/dashboard", admin.Dashboard)
	adm.GET("/statistics", admin.Statistics)
	adm.GET("/applications", admin.Applications)
}
