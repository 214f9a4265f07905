package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/PasinduAnjana/Studentscope-sub000/auth"
	"github.com/PasinduAnjana/Studentscope-sub000/models"
)

// SessionRepo is the GORM-backed implementation of auth.SessionRepo.
// Rows are keyed by token and never partially updated, so the database's
// own write serialization is all the locking this needs.
type SessionRepo struct {
	db *gorm.DB
}

func NewSessionRepo(db *gorm.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Insert(ctx context.Context, s *models.Session) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SessionRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	var row models.Session
	err := r.db.WithContext(ctx).Preload("User").First(&row, "token = ?", token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *SessionRepo) DeleteByToken(ctx context.Context, token string) error {
	return r.db.WithContext(ctx).Delete(&models.Session{}, "token = ?", token).Error
}

func (r *SessionRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at <= ?", cutoff).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

var _ auth.SessionRepo = (*SessionRepo)(nil)
