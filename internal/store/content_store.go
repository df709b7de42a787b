package store

import (
	"context"
	"errors"
	"time"

	"churchapp/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagStore struct{ db *gorm.DB }

func (s *Store) Tags() *TagStore { return &TagStore{db: s.DB} }

// FindOrCreate resolves a tag by name, minting it on first use.
func (s *TagStore) FindOrCreate(ctx context.Context, name string) (*domain.Tag, error) {
	tag := domain.Tag{Name: name}
	err := s.db.WithContext(ctx).
		Where("name = ?", name).
		Attrs(domain.Tag{ID: uuid.New(), CreatedAt: time.Now().UTC()}).
		FirstOrCreate(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagStore) List(ctx context.Context, limit, offset int) ([]domain.Tag, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.Tag{})
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Tag
	err := q.Order("name ASC").Limit(limit).Offset(offset).Find(&out).Error
	return out, total, err
}

func (s *TagStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := s.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Tag{})
	return tx.RowsAffected, tx.Error
}

type PostStore struct{ db *gorm.DB }

func (s *Store) Posts() *PostStore { return &PostStore{db: s.DB} }

type PostFilter struct {
	Kind   string
	Search string
	Tag    string
	Limit  int
	Offset int
}

func (s *PostStore) Create(ctx context.Context, p *domain.Post) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *PostStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	var p domain.Post
	if err := s.db.WithContext(ctx).Preload("Tags").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *PostStore) List(ctx context.Context, f PostFilter) ([]domain.Post, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.Post{})
	if f.Kind != "" {
		q = q.Where("posts.kind = ?", f.Kind)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("posts.title LIKE ? OR posts.body LIKE ?", like, like)
	}
	if f.Tag != "" {
		q = q.Joins("JOIN post_tags pt ON pt.post_id = posts.id").
			Joins("JOIN tags ON tags.id = pt.tag_id").
			Where("tags.name = ?", f.Tag)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Post
	err := q.Preload("Tags").Order("posts.created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (s *PostStore) Update(ctx context.Context, p *domain.Post) error {
	db := s.db.WithContext(ctx)
	err := db.Model(&domain.Post{ID: p.ID}).Updates(map[string]any{
		"title": p.Title,
		"body":  p.Body,
	}).Error
	if err != nil {
		return err
	}
	return db.Model(&domain.Post{ID: p.ID}).Association("Tags").Replace(p.Tags)
}

func (s *PostStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := s.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.Post{ID: id})
	return tx.RowsAffected, tx.Error
}

type MediaStore struct{ db *gorm.DB }

func (s *Store) Media() *MediaStore { return &MediaStore{db: s.DB} }

type MediaFilter struct {
	Kind   string
	Search string
	Tag    string
	Limit  int
	Offset int
}

func (s *MediaStore) Create(ctx context.Context, m *domain.MediaAsset) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *MediaStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.MediaAsset, error) {
	var m domain.MediaAsset
	if err := s.db.WithContext(ctx).Preload("Tags").First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &m, nil
}

// TitleTaken reports whether the uploader already has an asset of this
// kind and title, the id aside.
func (s *MediaStore) TitleTaken(ctx context.Context, kind, title string, owner uuid.UUID, exclude uuid.UUID) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.MediaAsset{}).
		Where("kind = ? AND title = ? AND uploaded_by_id = ? AND id <> ?", kind, title, owner, exclude).
		Count(&n).Error
	return n > 0, err
}

func (s *MediaStore) List(ctx context.Context, f MediaFilter) ([]domain.MediaAsset, int64, error) {
	q := s.db.WithContext(ctx).Model(&domain.MediaAsset{})
	if f.Kind != "" {
		q = q.Where("media_assets.kind = ?", f.Kind)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("media_assets.title LIKE ? OR media_assets.description LIKE ?", like, like)
	}
	if f.Tag != "" {
		q = q.Joins("JOIN media_tags mt ON mt.media_asset_id = media_assets.id").
			Joins("JOIN tags ON tags.id = mt.tag_id").
			Where("tags.name = ?", f.Tag)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.MediaAsset
	err := q.Preload("Tags").Order("media_assets.uploaded_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&out).Error
	return out, total, err
}

func (s *MediaStore) Update(ctx context.Context, m *domain.MediaAsset) error {
	db := s.db.WithContext(ctx)
	err := db.Model(&domain.MediaAsset{ID: m.ID}).Updates(map[string]any{
		"title":       m.Title,
		"description": m.Description,
		"url":         m.URL,
	}).Error
	if err != nil {
		return err
	}
	return db.Model(&domain.MediaAsset{ID: m.ID}).Association("Tags").Replace(m.Tags)
}

func (s *MediaStore) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	tx := s.db.WithContext(ctx).Select(clause.Associations).Delete(&domain.MediaAsset{ID: id})
	return tx.RowsAffected, tx.Error
}
