package repository

import (
	"context"
	"errors"

	"kemlabels/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VerificationTokenRepository interface {
	// Upsert replaces any existing token for the same user in one
	// statement, so regeneration cannot race a concurrent lookup into
	// leaving two live tokens.
	Upsert(ctx context.Context, token *entity.VerificationToken) error
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VerificationToken, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type verificationTokenRepository struct {
	db *gorm.DB
}

func NewVerificationTokenRepository(db *gorm.DB) VerificationTokenRepository {
	return &verificationTokenRepository{db: db}
}

func (r *verificationTokenRepository) Upsert(ctx context.Context, t *entity.VerificationToken) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"token_hash", "expires_at", "created_at"}),
		}).
		Create(t).Error
}

func (r *verificationTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.VerificationToken, error) {
	var token entity.VerificationToken
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&token).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &token, err
}

func (r *verificationTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.VerificationToken{}).
		Error
}
