package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type ClassHandler struct {
	db *gorm.DB
}

func NewClassHandler(db *gorm.DB) *ClassHandler { return &ClassHandler{db: db} }

var (
	clsReYear = regexp.MustCompile(`^[0-9]{4}$`)
	clsReRoom = regexp.MustCompile(`^[0-9A-Za-z]{1,10}$`)
)

type classPayload struct {
	Name         string `json:"name"`
	Grade        string `json:"grade"`
	Room         string `json:"room"`
	AcademicYear string `json:"academic_year"`
	// Clients may send the homeroom teacher as a numeric id or as a
	// teacher code string.
	HomeroomTeacher any `json:"homeroom_teacher"`
}

func (p *classPayload) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Grade = strings.TrimSpace(p.Grade)
	p.Room = strings.TrimSpace(p.Room)
	p.AcademicYear = strings.TrimSpace(p.AcademicYear)
}

func validateClass(p *classPayload) map[string]string {
	errs := map[string]string{}
	if p.Name == "" {
		errs["name"] = "class name is required"
	}
	if p.Grade == "" {
		errs["grade"] = "grade is required"
	}
	if !clsReRoom.MatchString(p.Room) {
		errs["room"] = "room must be 1-10 letters or digits"
	}
	if !clsReYear.MatchString(p.AcademicYear) {
		errs["academic_year"] = "academic year must be 4 digits"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// resolveTeacherID accepts a numeric id or a teacher code and resolves it
// to a teacher row id. Returns (nil, true) when the value is absent.
func (h *ClassHandler) resolveTeacherID(v any) (*uint, bool) {
	switch t := v.(type) {
	case nil:
		return nil, true
	case float64:
		if t <= 0 {
			return nil, false
		}
		id := uint(t)
		return &id, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, true
		}
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			id := uint(n)
			return &id, true
		}
		var teacher models.Teacher
		if err := h.db.First(&teacher, "code = ?", s).Error; err == nil && teacher.ID > 0 {
			return &teacher.ID, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// List handles GET /classes?q=&grade=&year=&page=&size=.
func (h *ClassHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	grade := strings.TrimSpace(c.QueryParam("grade"))
	year := strings.TrimSpace(c.QueryParam("year"))

	tx := h.db.Model(&models.Class{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("name ILIKE ?", like)
	}
	if grade != "" {
		tx = tx.Where("grade = ?", grade)
	}
	if year != "" {
		tx = tx.Where("academic_year = ?", year)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Class
	if err := tx.Order("grade ASC, room ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(items, total, page, size))
}

func (h *ClassHandler) Get(c echo.Context) error {
	var cls models.Class
	if err := h.db.First(&cls, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, cls)
}

func (h *ClassHandler) Create(c echo.Context) error {
	var p classPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateClass(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	teacherID, ok := h.resolveTeacherID(p.HomeroomTeacher)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"homeroom_teacher": "unknown teacher"},
		})
	}

	cls := models.Class{
		Name: p.Name, Grade: p.Grade, Room: p.Room,
		AcademicYear: p.AcademicYear, HomeroomTeacherID: teacherID,
	}
	if err := h.db.Create(&cls).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, cls)
}

func (h *ClassHandler) Update(c echo.Context) error {
	var existing models.Class
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p classPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateClass(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}
	teacherID, ok := h.resolveTeacherID(p.HomeroomTeacher)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error": "VALIDATION_ERROR", "fields": map[string]string{"homeroom_teacher": "unknown teacher"},
		})
	}

	existing.Name = p.Name
	existing.Grade = p.Grade
	existing.Room = p.Room
	existing.AcademicYear = p.AcademicYear
	existing.HomeroomTeacherID = teacherID
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *ClassHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.Class{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
