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

type AchievementHandler struct {
	db *gorm.DB
}

func NewAchievementHandler(db *gorm.DB) *AchievementHandler {
	return &AchievementHandler{db: db}
}

type achievementPayload struct {
	StudentID   uint   `json:"student_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	AwardedOn   string `json:"awarded_on"` // YYYY-MM-DD
}

func (p *achievementPayload) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	p.AwardedOn = strings.TrimSpace(p.AwardedOn)
}

func validateAchievement(p *achievementPayload) map[string]string {
	errs := map[string]string{}
	if p.StudentID == 0 {
		errs["student_id"] = "student is required"
	}
	if p.Title == "" {
		errs["title"] = "title is required"
	}
	if !validDate(p.AwardedOn) {
		errs["awarded_on"] = "awarded date must be YYYY-MM-DD"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// List handles GET /achievements?student_id=&category=&page=&size=.
func (h *AchievementHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	studentID := strings.TrimSpace(c.QueryParam("student_id"))
	category := strings.TrimSpace(c.QueryParam("category"))

	tx := h.db.Model(&models.Achievement{})
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if category != "" {
		tx = tx.Where("category = ?", category)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Achievement
	if err := tx.Order("awarded_on DESC, id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(items, total, page, size))
}

func (h *AchievementHandler) Create(c echo.Context) error {
	var p achievementPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateAchievement(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var student models.Student
	if err := h.db.First(&student, p.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	recordedBy, _ := c.Get(middlewares.CtxUserID).(uint)
	a := models.Achievement{
		StudentID: p.StudentID, Title: p.Title, Description: p.Description,
		Category: p.Category, AwardedOn: p.AwardedOn, RecordedBy: recordedBy,
	}
	if err := h.db.Create(&a).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AchievementHandler) Update(c echo.Context) error {
	var existing models.Achievement
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p achievementPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateAchievement(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.StudentID = p.StudentID
	existing.Title = p.Title
	existing.Description = p.Description
	existing.Category = p.Category
	existing.AwardedOn = p.AwardedOn
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *AchievementHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.Achievement{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// My handles GET /my/achievements for student accounts.
func (h *AchievementHandler) My(c echo.Context) error {
	studentID, ok := c.Get(middlewares.CtxStudentID).(uint)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NO_STUDENT_RECORD"})
	}

	var rows []models.Achievement
	if err := h.db.Where("student_id = ?", studentID).Order("awarded_on DESC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}
