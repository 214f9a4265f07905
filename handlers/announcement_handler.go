package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/middlewares"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

type AnnouncementHandler struct {
	db *gorm.DB
}

func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{db: db}
}

var announcementAudiences = map[string]bool{
	models.AudienceAll:      true,
	models.AudienceTeachers: true,
	models.AudienceStudents: true,
	models.AudienceClerks:   true,
}

// audiencesFor maps a viewer's role to the audiences they may read.
// An empty result means no filter (admins read everything).
func audiencesFor(role string) []string {
	switch role {
	case models.RoleAdmin:
		return nil
	case models.RoleTeacher:
		return []string{models.AudienceAll, models.AudienceTeachers}
	case models.RoleStudent:
		return []string{models.AudienceAll, models.AudienceStudents}
	case models.RoleClerk:
		return []string{models.AudienceAll, models.AudienceClerks}
	default:
		return []string{models.AudienceAll}
	}
}

type announcementPayload struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Audience string `json:"audience"`
}

func (p *announcementPayload) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Body = strings.TrimSpace(p.Body)
	p.Audience = strings.ToLower(strings.TrimSpace(p.Audience))
}

func validateAnnouncement(p *announcementPayload) map[string]string {
	errs := map[string]string{}
	if p.Title == "" {
		errs["title"] = "title is required"
	}
	if p.Body == "" {
		errs["body"] = "body is required"
	}
	if !announcementAudiences[p.Audience] {
		errs["audience"] = "audience must be all, teachers, students or clerks"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// List handles GET /announcements. The result is filtered to what the
// caller's role is allowed to read.
func (h *AnnouncementHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	role, _ := c.Get(middlewares.CtxRole).(string)

	tx := h.db.Model(&models.Announcement{})
	if audiences := audiencesFor(role); audiences != nil {
		tx = tx.Where("audience IN ?", audiences)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Announcement
	if err := tx.Order("published_at DESC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(items, total, page, size))
}

func (h *AnnouncementHandler) Create(c echo.Context) error {
	var p announcementPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateAnnouncement(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	authorID, _ := c.Get(middlewares.CtxUserID).(uint)
	a := models.Announcement{
		Title: p.Title, Body: p.Body, Audience: p.Audience,
		AuthorID: authorID, PublishedAt: time.Now(),
	}
	if err := h.db.Create(&a).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *AnnouncementHandler) Update(c echo.Context) error {
	var existing models.Announcement
	if err := h.db.First(&existing, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p announcementPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if errs := validateAnnouncement(&p); errs != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	existing.Title = p.Title
	existing.Body = p.Body
	existing.Audience = p.Audience
	if err := h.db.Save(&existing).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, existing)
}

func (h *AnnouncementHandler) Delete(c echo.Context) error {
	if err := h.db.Delete(&models.Announcement{}, "id = ?", c.Param("id")).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}
