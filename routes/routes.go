package routes

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/config"
	"github.com/PasinduAnjana/Studentscope-sub000/handlers"
	"github.com/PasinduAnjana/Studentscope-sub000/metrics"
	"github.com/PasinduAnjana/Studentscope-sub000/middlewares"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

// Register wires all HTTP routes.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	db *gorm.DB,
	authn *auth.Authenticator,
	sessions *auth.Sessions,
	collector *metrics.Collector,
	gatherer prometheus.Gatherer,
) {
	// ===== Handlers =====
	ah := handlers.NewAuthHandler(authn, sessions, collector)
	usr := handlers.NewUserHandler(db)
	std := handlers.NewStudentHandler(db)
	tch := handlers.NewTeacherHandler(db)
	cls := handlers.NewClassHandler(db)
	tt := handlers.NewTimetableHandler(db)
	att := handlers.NewAttendanceHandler(db)
	mk := handlers.NewMarkHandler(db)
	ann := handlers.NewAnnouncementHandler(db)
	ach := handlers.NewAchievementHandler(db)
	dash := handlers.NewDashboardHandler(db)

	// ===== Guards =====
	authed := middlewares.RequireSession(sessions)
	adminOnly := middlewares.RequireRole(models.RoleAdmin)
	adminClerk := middlewares.RequireRole(models.RoleAdmin, models.RoleClerk)
	staff := middlewares.RequireRole(models.RoleAdmin, models.RoleClerk, models.RoleTeacher)
	teaching := middlewares.RequireRole(models.RoleTeacher, models.RoleAdmin)
	studentOnly := middlewares.RequireRole(models.RoleStudent)

	// ===== Public =====
	e.GET("/health", handlers.Health)
	e.GET("/metrics", metrics.Handler(gatherer))

	loginLimiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(cfg.LoginRate),
			Burst:     cfg.LoginBurst,
			ExpiresIn: 3 * time.Minute,
		}),
	})
	e.POST("/login", ah.Login, loginLimiter)
	e.POST("/logout", ah.Logout)

	// ===== Current user =====
	e.GET("/me", ah.Me, authed)
	e.PUT("/profile/password", ah.ChangePassword, authed)

	// ===== Admin: accounts =====
	adm := e.Group("/admin", authed, adminOnly)
	adm.GET("/users", usr.List)
	adm.POST("/users", usr.Create)
	adm.POST("/users/:id/reset", usr.ResetPassword)

	// ===== Students =====
	st := e.Group("/students", authed)
	st.GET("", std.List, staff)
	st.GET("/:id", std.Get, staff)
	st.POST("", std.Create, adminClerk)
	st.POST("/import", std.Import, adminClerk)
	st.PUT("/:id", std.Update, adminClerk)
	st.DELETE("/:id", std.Delete, adminClerk)

	// ===== Teachers =====
	tc := e.Group("/teachers", authed, adminClerk)
	tc.GET("", tch.List)
	tc.GET("/:id", tch.Get)
	tc.POST("", tch.Create)
	tc.PUT("/:id", tch.Update)
	tc.DELETE("/:id", tch.Delete)

	// ===== Classes =====
	cl := e.Group("/classes", authed)
	cl.GET("", cls.List, staff)
	cl.GET("/:id", cls.Get, staff)
	cl.POST("", cls.Create, adminOnly)
	cl.PUT("/:id", cls.Update, adminOnly)
	cl.DELETE("/:id", cls.Delete, adminOnly)

	// ===== Timetable =====
	tg := e.Group("/timetable", authed)
	tg.GET("", tt.List)
	tg.POST("", tt.Create, adminClerk)
	tg.PUT("/:id", tt.Update, adminClerk)
	tg.DELETE("/:id", tt.Delete, adminClerk)

	// ===== Attendance =====
	at := e.Group("/attendance", authed)
	at.GET("", att.List, staff)
	at.POST("/mark", att.Mark, teaching)

	// ===== Marks =====
	mg := e.Group("/marks", authed)
	mg.GET("", mk.List, staff)
	mg.POST("", mk.Create, teaching)
	mg.PUT("/:id", mk.Update, teaching)
	mg.DELETE("/:id", mk.Delete, teaching)

	// ===== Announcements =====
	an := e.Group("/announcements", authed)
	an.GET("", ann.List)
	an.POST("", ann.Create, adminClerk)
	an.PUT("/:id", ann.Update, adminClerk)
	an.DELETE("/:id", ann.Delete, adminClerk)

	// ===== Achievements =====
	ac := e.Group("/achievements", authed)
	ac.GET("", ach.List)
	ac.POST("", ach.Create, staff)
	ac.PUT("/:id", ach.Update, staff)
	ac.DELETE("/:id", ach.Delete, staff)

	// ===== Student self-service =====
	my := e.Group("/my", authed, studentOnly)
	my.GET("/attendance", att.My)
	my.GET("/marks", mk.My)
	my.GET("/achievements", ach.My)

	// ===== Dashboard =====
	e.GET("/dashboard/summary", dash.Summary, authed, adminClerk)
}
