package store

import (
	"context"
	"errors"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SermonStore struct{ db *gorm.DB }

func (s *Store) Sermons() *SermonStore { return &SermonStore{db: s.DB} }

type SermonFilter struct {
	Search string
	Series string
	Limit  int
	Offset int
}

func (s *SermonStore) Create(ctx context.Context, sm *domain.Sermon) error {
	if sm.ID == uuid.Nil {
		sm.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(sm).Error
}

func (s *SermonStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Sermon, error) {
	var sm domain.Sermon
	if err := s.db.WithContext(ctx).First(&sm, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &sm, nil
}

func (s *SermonStore) List(ctx context.Context, f SermonFilter) ([]domain.Sermon, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.Sermon{})
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}
	if f.Series != "" {
		q = q.Where("series_title = ?", f.Series)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Sermon
	err := q.Order("date DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (s *SermonStore) Update(ctx context.Context, sm *domain.Sermon) error {
	return s.db.WithContext(ctx).Model(&domain.Sermon{}).
		Where("id = ?", sm.ID).
		Updates(map[string]any{
			"title":        sm.Title,
			"description":  sm.Description,
			"date":         sm.Date,
			"series_title": sm.SeriesTitle,
			"audio_url":    sm.AudioURL,
			"video_url":    sm.VideoURL,
			"transcript":   sm.Transcript,
		}).Error
}

func (s *SermonStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Sermon{})
	return tx.RowsAffected, tx.Error
}
