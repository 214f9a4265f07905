package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type StudentHandler struct {
	db *gorm.DB
}

func NewStudentHandler(db *gorm.DB) *StudentHandler { return &StudentHandler{db: db} }

var (
	stuReCode  = regexp.MustCompile(`^[A-Za-z0-9\-]{1,20}$`)
	stuReName  = regexp.MustCompile(`^[\p{L} .'\-]{1,50}$`)
	stuRePhone = regexp.MustCompile(`^[0-9+\- ]{9,20}$`)
)

var studentStatuses = map[string]bool{
	"active": true, "suspended": true, "left": true, "graduated": true,
}

type studentPayload struct {
	Code      string `json:"code"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"` // YYYY-MM-DD or empty
	Grade     string `json:"grade"`
	Room      string `json:"room"`
	ClassID   *uint  `json:"class_id"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	Status    string `json:"status"`
}

func (p *studentPayload) normalize() {
	p.Code = strings.TrimSpace(p.Code)
	p.FirstName = strings.Join(strings.Fields(p.FirstName), " ")
	p.LastName = strings.Join(strings.Fields(p.LastName), " ")
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.Grade = strings.TrimSpace(p.Grade)
	p.Room = strings.TrimSpace(p.Room)
	p.Address = strings.TrimSpace(p.Address)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Status = strings.TrimSpace(p.Status)
}

func validateStudent(p *studentPayload) map[string]string {
	errs := map[string]string{}
	if !stuReCode.MatchString(p.Code) {
		errs["code"] = "student code must be 1-20 letters, digits or dashes"
	}
	if !stuReName.MatchString(p.FirstName) {
		errs["first_name"] = "first name is required"
	}
	if !stuReName.MatchString(p.LastName) {
		errs["last_name"] = "last name is required"
	}
	if p.BirthDate != "" && !validDate(p.BirthDate) {
		errs["birth_date"] = "birth date must be YYYY-MM-DD or empty"
	}
	if p.Grade == "" {
		errs["grade"] = "grade is required"
	}
	if p.Phone != "" && !stuRePhone.MatchString(p.Phone) {
		errs["phone"] = "phone number format is invalid"
	}
	if !studentStatuses[p.Status] {
		errs["status"] = "status must be active, suspended, left or graduated"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (p *studentPayload) apply(s *models.Student) {
	s.Code = p.Code
	s.FirstName = p.FirstName
	s.LastName = p.LastName
	if p.BirthDate != "" {
		if b, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			s.BirthDate = &b
		}
	} else {
		s.BirthDate = nil
	}
	s.Grade = p.Grade
	s.Room = p.Room
	s.ClassID = p.ClassID
	s.Address = p.Address
	s.Phone = p.Phone
	s.Status = p.Status
}

// List handles GET /students?q=&grade=&room=&class_id=&page=&size=.
func (h *StudentHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	grade := strings.TrimSpace(c.QueryParam("grade"))
	room := strings.TrimSpace(c.QueryParam("room"))
	classID := strings.TrimSpace(c.QueryParam("class_id"))

	tx := h.db.Model(&models.Student{})
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("code ILIKE ? OR first_name ILIKE ? OR last_name ILIKE ?", like, like, like)
	}
	if grade != "" {
		tx = tx.Where("grade = ?", grade)
	}
	if room != "" {
		tx = tx.Where("room = ?", room)
	}
	if classID != "" {
		tx = tx.Where("class_id = ?", classID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Student
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(items, total, page, size))
}

func (h *StudentHandler) Get(c echo.Context) error {
	var s models.Student
	if err := h.db.First(&s, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *StudentHandler) Create(c echo.Context) error {
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var s models.Student
	p.apply(&s)
	if err := h.db.Create(&s).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, s)
}

func (h *StudentHandler) Update(c echo.Context) error {
	var existing models.Student
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateStudent(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	p.apply(&existing)
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *StudentHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.Student{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// Import handles POST /students/import with a JSON array of students.
// All rows must validate before anything is inserted.
func (h *StudentHandler) Import(c echo.Context) error {
	var arr []studentPayload
	if err := c.Bind(&arr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	if len(arr) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "EMPTY_IMPORT"})
	}

	var inserted []models.Student
	issues := []map[string]any{}
	for i := range arr {
		p := arr[i]
		p.normalize()
		if errs := validateStudent(&p); errs != nil {
			issues = append(issues, map[string]any{"index": i, "fields": errs})
			continue
		}
		var s models.Student
		p.apply(&s)
		inserted = append(inserted, s)
	}
	if len(issues) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "BULK_VALIDATION_ERROR", "issues": issues})
	}
	if err := h.db.Create(&inserted).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"inserted": len(inserted)})
}
