package repository

import (
	"context"
	"errors"

	"kemlabels/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OTPRepository interface {
	// Upsert replaces any existing passcode for the same email address.
	Upsert(ctx context.Context, otp *entity.OTP) error
	FindByEmail(ctx context.Context, email string) (*entity.OTP, error)
	// Delete removes a consumed passcode by row id, never by code value.
	Delete(ctx context.Context, id uuid.UUID) error
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Upsert(ctx context.Context, otp *entity.OTP) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
		}).
		Create(otp).Error
}

func (r *otpRepository) FindByEmail(ctx context.Context, email string) (*entity.OTP, error) {
	var otp entity.OTP
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&otp).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &otp, err
}

func (r *otpRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.OTP{}).
		Error
}
