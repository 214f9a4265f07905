package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type TimetableHandler struct {
	db *gorm.DB
}

func NewTimetableHandler(db *gorm.DB) *TimetableHandler { return &TimetableHandler{db: db} }

type timetablePayload struct {
	ClassID   uint   `json:"class_id"`
	TeacherID uint   `json:"teacher_id"`
	Subject   string `json:"subject"`
	DayOfWeek int    `json:"day_of_week"` // 1 = Monday … 7 = Sunday
	Period    int    `json:"period"`
	StartTime string `json:"start_time"` // HH:MM
	EndTime   string `json:"end_time"`   // HH:MM
}

func (p *timetablePayload) normalize() {
	p.Subject = strings.TrimSpace(p.Subject)
	p.StartTime = strings.TrimSpace(p.StartTime)
	p.EndTime = strings.TrimSpace(p.EndTime)
}

func validateTimetable(p *timetablePayload) map[string]string {
	errs := map[string]string{}
	if p.ClassID == 0 {
		errs["class_id"] = "class is required"
	}
	if p.TeacherID == 0 {
		errs["teacher_id"] = "teacher is required"
	}
	if p.Subject == "" {
		errs["subject"] = "subject is required"
	}
	if p.DayOfWeek < 1 || p.DayOfWeek > 7 {
		errs["day_of_week"] = "day of week must be between 1 and 7"
	}
	if p.Period < 1 {
		errs["period"] = "period must be 1 or greater"
	}
	if !validClock(p.StartTime) {
		errs["start_time"] = "start time must be HH:MM"
	}
	if !validClock(p.EndTime) {
		errs["end_time"] = "end time must be HH:MM"
	} else if validClock(p.StartTime) && p.EndTime <= p.StartTime {
		errs["end_time"] = "end time must be after start time"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// slotTaken reports whether another entry already occupies the class's slot.
func (h *TimetableHandler) slotTaken(p *timetablePayload, excludeID uint) (bool, error) {
	var count int64
	tx := h.db.Model(&models.TimetableEntry{}).
		Where("class_id = ? AND day_of_week = ? AND period = ?", p.ClassID, p.DayOfWeek, p.Period)
	if excludeID > 0 {
		tx = tx.Where("id <> ?", excludeID)
	}
	if err := tx.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List handles GET /timetable?class_id=&teacher_id=&day=.
func (h *TimetableHandler) List(c echo.Context) error {
	classID := strings.TrimSpace(c.QueryParam("class_id"))
	teacherID := strings.TrimSpace(c.QueryParam("teacher_id"))
	day := strings.TrimSpace(c.QueryParam("day"))

	tx := h.db.Model(&models.TimetableEntry{})
	if classID != "" {
		tx = tx.Where("class_id = ?", classID)
	}
	if teacherID != "" {
		tx = tx.Where("teacher_id = ?", teacherID)
	}
	if day != "" {
		tx = tx.Where("day_of_week = ?", day)
	}

	var items []models.TimetableEntry
	if err := tx.Order("day_of_week ASC, period ASC").Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *TimetableHandler) Create(c echo.Context) error {
	var p timetablePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateTimetable(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	taken, err := h.slotTaken(&p, 0)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if taken {
		return c.JSON(http.StatusConflict, map[string]string{"error": "SLOT_TAKEN"})
	}

	entry := models.TimetableEntry{
		ClassID: p.ClassID, TeacherID: p.TeacherID, Subject: p.Subject,
		DayOfWeek: p.DayOfWeek, Period: p.Period,
		StartTime: p.StartTime, EndTime: p.EndTime,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, entry)
}

func (h *TimetableHandler) Update(c echo.Context) error {
	var existing models.TimetableEntry
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p timetablePayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateTimetable(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	taken, err := h.slotTaken(&p, existing.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if taken {
		return c.JSON(http.StatusConflict, map[string]string{"error": "SLOT_TAKEN"})
	}

	existing.ClassID = p.ClassID
	existing.TeacherID = p.TeacherID
	existing.Subject = p.Subject
	existing.DayOfWeek = p.DayOfWeek
	existing.Period = p.Period
	existing.StartTime = p.StartTime
	existing.EndTime = p.EndTime
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *TimetableHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.TimetableEntry{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
