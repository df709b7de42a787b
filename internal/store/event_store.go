package store

import (
	"context"
	"errors"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventStore struct{ db *gorm.DB }

func (s *Store) Events() *EventStore { return &EventStore{db: s.DB} }

// EventFilter narrows List; zero values mean "no constraint".
type EventFilter struct {
	Status string
	Search string
	Limit  int
	Offset int
}

func (e *EventStore) Create(ctx context.Context, ev *domain.Event) error {
	if ev.ID == uuid.Nil {
		ev.ID = uuid.New()
	}
	return e.db.WithContext(ctx).Create(ev).Error
}

func (e *EventStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Event, error) {
	var ev domain.Event
	if err := e.db.WithContext(ctx).First(&ev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &ev, nil
}

func (e *EventStore) List(ctx context.Context, f EventFilter) ([]domain.Event, int64, error) {
	q := e.db.WithContext(ctx).Model(&domain.Event{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Search != "" {
		q = q.Where("title LIKE ?", "%"+f.Search+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Event
	err := q.Order("date").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (e *EventStore) Update(ctx context.Context, ev *domain.Event) error {
	return e.db.WithContext(ctx).Model(&domain.Event{}).
		Where("id = ?", ev.ID).
		Updates(map[string]any{
			"title":       ev.Title,
			"description": ev.Description,
			"date":        ev.Date,
			"location":    ev.Location,
			"status":      ev.Status,
		}).Error
}

func (e *EventStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := e.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Event{})
	return tx.RowsAffected, tx.Error
}
