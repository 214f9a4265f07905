package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type TeacherHandler struct {
	db *gorm.DB
}

func NewTeacherHandler(db *gorm.DB) *TeacherHandler { return &TeacherHandler{db: db} }

var (
	tchReCode = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)
	tchReName = regexp.MustCompile(`^[\p{L} .'\-]{1,50}$`)
)

var teacherStatuses = map[string]bool{"active": true, "inactive": true}

type teacherPayload struct {
	Code      string `json:"code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Subjects  string `json:"subjects"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
}

func (p *teacherPayload) normalize() {
	p.Code = strings.TrimSpace(p.Code)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.Subjects = strings.TrimSpace(p.Subjects)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Status = strings.TrimSpace(p.Status)
}

func validateTeacher(p *teacherPayload) map[string]string {
	errs := map[string]string{}
	if !tchReCode.MatchString(p.Code) {
		errs["code"] = "teacher code must be 1-20 letters, digits or dashes"
	}
	if !tchReName.MatchString(p.FirstName) {
		errs["first_name"] = "first name is required"
	}
	if !tchReName.MatchString(p.LastName) {
		errs["last_name"] = "last name is required"
	}
	if !teacherStatuses[p.Status] {
		errs["status"] = "status must be active or inactive"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// List handles GET /teachers?q=&status=&page=&size=.
func (h *TeacherHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	status := strings.TrimSpace(c.QueryParam("status"))

	tx := h.db.Model(&models.Teacher{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("code ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ? OR subjects ILIKE ?",
			like, like, like, like)
	}
	if status != "" {
		tx = tx.Where("status = ?", status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Teacher
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(items, total, page, size))
}

func (h *TeacherHandler) Get(c echo.Context) error {
	var t models.Teacher
	if err := h.db.First(&t, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, t)
}

func (h *TeacherHandler) Create(c echo.Context) error {
	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateTeacher(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	t := models.Teacher{
		Code: p.Code, FirstName: p.FirstName, LastName: p.LastName,
		Subjects: p.Subjects, Phone: p.Phone, Status: p.Status,
	}
	if err := h.db.Create(&t).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *TeacherHandler) Update(c echo.Context) error {
	var existing models.Teacher
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p teacherPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateTeacher(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.Code = p.Code
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.Subjects = p.Subjects
	existing.Phone = p.Phone
	existing.Status = p.Status
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *TeacherHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.Teacher{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
