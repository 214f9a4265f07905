package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler { return &DashboardHandler{db: db} }

// Summary handles GET /dashboard/summary: headline counts plus today's
// attendance broken down by status.
func (h *DashboardHandler) Summary(c echo.Context) error {
	var students, teachers, classes int64
	if err := h.db.Model(&models.Student{}).Where("status = ?", "active").Count(&students).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := h.db.Model(&models.Teacher{}).Where("status = ?", "active").Count(&teachers).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	if err := h.db.Model(&models.Class{}).Count(&classes).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}

	today := time.Now().Format("2006-01-02")
	var rows []struct {
		Status string
		Count  int64
	}
	if err := h.db.Model(&models.Attendance{}).
		Select("status, COUNT(*) AS count").
		Where("date = ?", today).
		Group("status").
		Scan(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	attendance := map[string]int64{}
	for _, r := range rows {
		attendance[r.Status] = r.Count
	}

	return c.JSON(http.StatusOK, map[string]any{
		"students":         students,
		"teachers":         teachers,
		"classes":          classes,
		"attendance_today": attendance,
		"date":             today,
	})
}
