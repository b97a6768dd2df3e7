package storage

import (
	"errors"
	"fmt"

	"github.com/bitwatch/bitwatch-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormVerificationStore struct {
	db *gorm.DB
}

func NewGormVerificationStore(db *gorm.DB) *GormVerificationStore {
	return &GormVerificationStore{db: db}
}

func (s *GormVerificationStore) Upsert(v *models.EmailVerification) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"verification_code", "expires_at", "is_verified", "created_at",
		}),
	}).Create(v).Error
	if err != nil {
		return fmt.Errorf("failed to upsert verification: %w", err)
	}
	return nil
}

func (s *GormVerificationStore) FindByEmail(email string) (*models.EmailVerification, error) {
	var v models.EmailVerification
	if err := s.db.Where("email = ?", email).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find verification: %w", err)
	}
	return &v, nil
}

func (s *GormVerificationStore) MarkVerified(email string) error {
	res := s.db.Model(&models.EmailVerification{}).
		Where("email = ?", email).
		Update("is_verified", true)
	if res.Error != nil {
		return fmt.Errorf("failed to mark verification: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
