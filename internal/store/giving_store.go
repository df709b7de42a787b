package store

import (
	"context"
	"errors"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GivingStore struct{ db *gorm.DB }

func (s *Store) Giving() *GivingStore { return &GivingStore{db: s.DB} }

func (g *GivingStore) CreateTransaction(ctx context.Context, txn *domain.Transaction) error {
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	return g.db.WithContext(ctx).Create(txn).Error
}

func (g *GivingStore) UpdateTransactionStatus(ctx context.Context, id uuid.UUID, status, respCode, respMsg string) error {
	return g.db.WithContext(ctx).Model(&domain.Transaction{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":            status,
			"gateway_resp_code": respCode,
			"gateway_resp_msg":  respMsg,
		}).Error
}

func (g *GivingStore) GetTransaction(ctx context.Context, id uuid.UUID) (*domain.Transaction, error) {
	var txn domain.Transaction
	if err := g.db.WithContext(ctx).First(&txn, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (g *GivingStore) CreateDonation(ctx context.Context, d *domain.Donation) error {
	return g.db.WithContext(ctx).Create(d).Error
}

func (g *GivingStore) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Transaction, int64, error) {
	q := g.db.WithContext(ctx).Model(&domain.Transaction{}).Where("user_id = ?", userID)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Transaction
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}
