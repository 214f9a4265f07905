package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/middlewares"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type AttendanceHandler struct {
	db *gorm.DB
}

func NewAttendanceHandler(db *gorm.DB) *AttendanceHandler { return &AttendanceHandler{db: db} }

var attendanceStatuses = map[string]bool{
	"present": true, "absent": true, "late": true, "leave": true,
}

type markAttendanceReq struct {
	StudentID uint   `json:"student_id"`
	Date      string `json:"date"` // YYYY-MM-DD
	Status    string `json:"status"`
	Note      string `json:"note"`
}

// Mark handles POST /attendance/mark. One row per student per day; marking
// the same day again updates the existing row.
func (h *AttendanceHandler) Mark(c echo.Context) error {
	var req markAttendanceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.Status = strings.TrimSpace(req.Status)
	req.Note = strings.TrimSpace(req.Note)

	errs := map[string]string{}
	if req.StudentID == 0 {
		errs["student_id"] = "student is required"
	}
	if !validDate(req.Date) {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if !attendanceStatuses[req.Status] {
		errs["status"] = "status must be present, absent, late or leave"
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var student models.Student
	if err := h.db.First(&student, req.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	markedBy, _ := c.Get(middlewares.CtxUserID).(uint)

	var existing models.Attendance
	err := h.db.Where("student_id = ? AND date = ?", req.StudentID, req.Date).First(&existing).Error
	switch {
	case err == nil:
		existing.Status = req.Status
		existing.Note = req.Note
		existing.MarkedBy = markedBy
		if err := h.db.Save(&existing).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
		}
		return c.JSON(http.StatusOK, existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.Attendance{
			StudentID: req.StudentID, Date: req.Date,
			Status: req.Status, Note: req.Note, MarkedBy: markedBy,
		}
		if err := h.db.Create(&row).Error; err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_INSERT_FAILED"})
		}
		return c.JSON(http.StatusCreated, row)
	default:
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
}

// List handles GET /attendance?start=&end=&student_id=&class_id=&statuses=.
func (h *AttendanceHandler) List(c echo.Context) error {
	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))
	studentID := strings.TrimSpace(c.QueryParam("student_id"))
	classID := strings.TrimSpace(c.QueryParam("class_id"))
	statuses := strings.TrimSpace(c.QueryParam("statuses"))

	tx := h.db.Model(&models.Attendance{})
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if statuses != "" {
		if parts := splitCSV(statuses); len(parts) > 0 {
			tx = tx.Where("status IN ?", parts)
		}
	}
	if classID != "" {
		tx = tx.Joins("JOIN students s ON s.id = attendances.student_id").
			Where("s.class_id = ?", classID)
	}

	var rows []models.Attendance
	if err := tx.Order("date ASC, student_id ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}

// My handles GET /my/attendance for student accounts. The student link was
// resolved by the session guard.
func (h *AttendanceHandler) My(c echo.Context) error {
	studentID, ok := c.Get(middlewares.CtxStudentID).(uint)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NO_STUDENT_RECORD"})
	}

	start := strings.TrimSpace(c.QueryParam("start"))
	end := strings.TrimSpace(c.QueryParam("end"))

	tx := h.db.Model(&models.Attendance{}).Where("student_id = ?", studentID)
	if start != "" && end != "" {
		tx = tx.Where("date >= ? AND date <= ?", start, end)
	}

	var rows []models.Attendance
	if err := tx.Order("date DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}
