package handlers

import (
	"crypto/rand"
	"errors"
	"math/big"
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

// UserHandler covers admin account provisioning: list accounts, create an
// account for any role, reset a password.
type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler { return &UserHandler{db: db} }

var reUsername = regexp.MustCompile(`^[A-Za-z0-9_.\-]{3,60}$`)

type createUserReq struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	StudentID *uint  `json:"student_id"`
}

type resetPasswordReq struct {
	Password string `json:"password"` // empty → generate one
}

// List handles GET /admin/users?role=&q=.
func (h *UserHandler) List(c echo.Context) error {
	page, size := pageParams(c)
	role := strings.TrimSpace(c.QueryParam("role"))
	q := strings.TrimSpace(c.QueryParam("q"))

	tx := h.db.Model(&models.User{})
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if q != "" {
		like := "%" + q + "%"
		tx = tx.Where("username ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var users []models.User
	if err := tx.Order("id DESC").Limit(size).Offset((page - 1) * size).Find(&users).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, listResponse(users, total, page, size))
}

// Create handles POST /admin/users.
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Name = strings.TrimSpace(req.Name)

	errs := map[string]string{}
	if !reUsername.MatchString(req.Username) {
		errs["username"] = "username must be 3-60 letters, digits, dot, dash or underscore"
	}
	if len(req.Password) < 6 {
		errs["password"] = "password must be at least 6 characters"
	}
	if !models.ValidRole(req.Role) {
		errs["role"] = "role must be admin, clerk, teacher or student"
	}
	if req.StudentID != nil && req.Role != models.RoleStudent {
		errs["student_id"] = "only student accounts can link a student record"
	}
	if len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": errs})
	}

	var dup models.User
	err := h.db.Where("username = ?", req.Username).First(&dup).Error
	if err == nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": "USERNAME_TAKEN"})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	hash, err := auth.HashPassword(req.Password, salt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}

	u := models.User{
		Username:     req.Username,
		PasswordHash: hash,
		Salt:         salt,
		Role:         req.Role,
		Name:         req.Name,
		StudentID:    req.StudentID,
	}
	if err := h.db.Create(&u).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusCreated, u)
}

// ResetPassword handles POST /admin/users/:id/reset. A new (hash, salt)
// pair replaces the old one wholesale; existing sessions stay valid until
// they expire or the user logs out.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	id := c.Param("id")
	var u models.User
	if err := h.db.First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var req resetPasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	password := req.Password
	generated := false
	if password == "" {
		p, err := randomPassword(12)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "PASSWORD_GEN_FAILED"})
		}
		password = p
		generated = true
	} else if len(password) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "PASSWORD_TOO_SHORT"})
	}

	salt, err := auth.GenerateSalt()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	hash, err := auth.HashPassword(password, salt)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "HASH_FAILED"})
	}
	if err := h.db.Model(&u).Updates(map[string]any{"password_hash": hash, "salt": salt}).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_UPDATE_FAILED"})
	}

	resp := map[string]any{"message": "Password reset"}
	if generated {
		resp["one_time_password"] = password
	}
	return c.JSON(http.StatusOK, resp)
}

const passwordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

func randomPassword(n int) (string, error) {
	if n < 8 {
		n = 8
	}
	out := make([]byte, n)
	for i := range out {
		idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(passwordAlphabet))))
		if err != nil {
			return "", err
		}
		out[i] = passwordAlphabet[idx.Int64()]
	}
	return string(out), nil
}
