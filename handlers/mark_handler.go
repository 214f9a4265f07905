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

type MarkHandler struct {
	db *gorm.DB
}

func NewMarkHandler(db *gorm.DB) *MarkHandler { return &MarkHandler{db: db} }

type markPayload struct {
	StudentID uint    `json:"student_id"`
	Subject   string  `json:"subject"`
	Term      string  `json:"term"`
	Exam      string  `json:"exam"`
	Score     float64 `json:"score"`
	MaxScore  float64 `json:"max_score"`
}

func (p *markPayload) normalize() {
	p.Subject = strings.TrimSpace(p.Subject)
	p.Term = strings.TrimSpace(p.Term)
	p.Exam = strings.TrimSpace(p.Exam)
}

func validateMark(p *markPayload) map[string]string {
	errs := map[string]string{}
	if p.StudentID == 0 {
		errs["student_id"] = "student is required"
	}
	if p.Subject == "" {
		errs["subject"] = "subject is required"
	}
	if p.Term == "" {
		errs["term"] = "term is required"
	}
	if p.Exam == "" {
		errs["exam"] = "exam is required"
	}
	if p.MaxScore <= 0 {
		errs["max_score"] = "max score must be greater than zero"
	}
	if p.Score < 0 || (p.MaxScore > 0 && p.Score > p.MaxScore) {
		errs["score"] = "score must be between 0 and max score"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// List handles GET /marks?student_id=&subject=&term=&page=&size=.
func (h *MarkHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	studentID := strings.TrimSpace(c.QueryParam("student_id"))
	subject := strings.TrimSpace(c.QueryParam("subject"))
	term := strings.TrimSpace(c.QueryParam("term"))

	tx := h.db.Model(&models.Mark{})
	if studentID != "" {
		tx = tx.Where("student_id = ?", studentID)
	}
	if subject != "" {
		tx = tx.Where("subject = ?", subject)
	}
	if term != "" {
		tx = tx.Where("term = ?", term)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Mark
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(items, total, page, size))
}

func (h *MarkHandler) Create(c echo.Context) error {
	var p markPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateMark(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var student models.Student
	if err := h.db.First(&student, p.StudentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "STUDENT_NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	markedBy, _ := c.Get(middlewares.CtxUserID).(uint)
	m := models.Mark{
		StudentID: p.StudentID, Subject: p.Subject, Term: p.Term, Exam: p.Exam,
		Score: p.Score, MaxScore: p.MaxScore, MarkedBy: markedBy,
	}
	if err := h.db.Create(&m).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *MarkHandler) Update(c echo.Context) error {
	var existing models.Mark
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p markPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateMark(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.StudentID = p.StudentID
	existing.Subject = p.Subject
	existing.Term = p.Term
	existing.Exam = p.Exam
	existing.Score = p.Score
	existing.MaxScore = p.MaxScore
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *MarkHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.Mark{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// My handles GET /my/marks for student accounts.
func (h *MarkHandler) My(c echo.Context) error {
	studentID, ok := c.Get(middlewares.CtxStudentID).(uint)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "NO_STUDENT_RECORD"})
	}

	tx := h.db.Model(&models.Mark{}).Where("student_id = ?", studentID)
	if term := strings.TrimSpace(c.QueryParam("term")); term != "" {
		tx = tx.Where("term = ?", term)
	}

	var rows []models.Mark
	if err := tx.Order("term DESC, subject ASC").Find(&rows).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, rows)
}
