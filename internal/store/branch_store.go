package store

import (
	"context"
	"errors"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BranchStore struct{ db *gorm.DB }

func (s *Store) Branches() *BranchStore { return &BranchStore{db: s.DB} }

func (b *BranchStore) Create(ctx context.Context, br *domain.ChurchBranch) error {
	if br.ID == uuid.Nil {
		br.ID = uuid.New()
	}
	return b.db.WithContext(ctx).Create(br).Error
}

func (b *BranchStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.ChurchBranch, error) {
	var br domain.ChurchBranch
	if err := b.db.WithContext(ctx).First(&br, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &br, nil
}

func (b *BranchStore) List(ctx context.Context, limit, offset int) ([]domain.ChurchBranch, int64, error) {
	var total int64
	if err := b.db.WithContext(ctx).Model(&domain.ChurchBranch{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.ChurchBranch
	err := b.db.WithContext(ctx).Order("name").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (b *BranchStore) Update(ctx context.Context, br *domain.ChurchBranch) error {
	return b.db.WithContext(ctx).Model(&domain.ChurchBranch{}).
		Where("id = ?", br.ID).
		Updates(map[string]any{"name": br.Name, "address": br.Address}).Error
}

func (b *BranchStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := b.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.ChurchBranch{})
	return tx.RowsAffected, tx.Error
}
