package store

import (
	"context"
	"errors"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TokenStore struct{ db *gorm.DB }

func (s *Store) Tokens() *TokenStore { return &TokenStore{db: s.DB} }

func (t *TokenStore) Create(ctx context.Context, tok *domain.AuthToken) error {
	return t.db.WithContext(ctx).Create(tok).Error
}

func (t *TokenStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.AuthToken, error) {
	var tok domain.AuthToken
	if err := t.db.WithContext(ctx).First(&tok, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &tok, nil
}

func (t *TokenStore) GetByKey(ctx context.Context, key string) (*domain.AuthToken, error) {
	var tok domain.AuthToken
	if err := t.db.WithContext(ctx).First(&tok, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &tok, nil
}

func (t *TokenStore) DeleteByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	tx := t.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.AuthToken{})
	return tx.RowsAffected, tx.Error
}

func (t *TokenStore) DeleteByKey(ctx context.Context, key string) error {
	return t.db.WithContext(ctx).Where("key = ?", key).Delete(&domain.AuthToken{}).Error
}
