package impl

import (
	"context"
	"strings"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/store"

	"github.com/google/uuid"
)

type ContentServiceImpl struct {
	store *store.Store
}

func NewContentService(st *store.Store) *ContentServiceImpl {
	return &ContentServiceImpl{store: st}
}

func (c *ContentServiceImpl) CreateTag(ctx context.Context, r dto.TagRequest) (*domain.Tag, error) {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	return c.store.Tags().FindOrCreate(ctx, name)
}

func (c *ContentServiceImpl) ListTags(ctx context.Context, limit, offset int) (*dto.Page[domain.Tag], error) {
	limit = clampLimit(limit)
	items, total, err := c.store.Tags().List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.Tag]{Count: total, Results: items}, nil
}

func (c *ContentServiceImpl) DeleteTag(ctx context.Context, id domain.TagID) error {
	rows, err := c.store.Tags().Delete(ctx, id)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// resolveTags maps request tag names to rows, minting missing ones.
// Blank and duplicate names are dropped.
func (c *ContentServiceImpl) resolveTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	seen := map[string]bool{}
	out := make([]domain.Tag, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		tag, err := c.store.Tags().FindOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		out = append(out, *tag)
	}
	return out, nil
}

func (c *ContentServiceImpl) CreatePost(ctx context.Context, kind string, author domain.UserID, r dto.PostRequest) (*domain.Post, error) {
	if !domain.ValidPostKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	title := strings.TrimSpace(r.Title)
	if title == "" || strings.TrimSpace(r.Body) == "" {
		return nil, domain.ErrInvalidInput
	}
	tags, err := c.resolveTags(ctx, r.Tags)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &domain.Post{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     title,
		Body:      r.Body,
		AuthorID:  author,
		Tags:      tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.store.Posts().Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *ContentServiceImpl) GetPost(ctx context.Context, id domain.PostID) (*domain.Post, error) {
	p, err := c.store.Posts().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return p, nil
}

func (c *ContentServiceImpl) ListPosts(ctx context.Context, f store.PostFilter) (*dto.Page[domain.Post], error) {
	if f.Kind != "" && !domain.ValidPostKind(f.Kind) {
		return nil, domain.ErrInvalidInput
	}
	f.Limit = clampLimit(f.Limit)
	items, total, err := c.store.Posts().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.Post]{Count: total, Results: items}, nil
}

func (c *ContentServiceImpl) UpdatePost(ctx context.Context, id domain.PostID, actor *domain.UserProfile, r dto.PostRequest) (*domain.Post, error) {
	p, err := c.store.Posts().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !canManage(actor, p.AuthorID) {
		return nil, domain.ErrForbidden
	}
	if title := strings.TrimSpace(r.Title); title != "" {
		p.Title = title
	}
	if r.Body != "" {
		p.Body = r.Body
	}
	if r.Tags != nil {
		tags, err := c.resolveTags(ctx, r.Tags)
		if err != nil {
			return nil, err
		}
		p.Tags = tags
	}
	if err := c.store.Posts().Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *ContentServiceImpl) DeletePost(ctx context.Context, id domain.PostID, actor *domain.UserProfile) error {
	p, err := c.store.Posts().GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if !canManage(actor, p.AuthorID) {
		return domain.ErrForbidden
	}
	_, err = c.store.Posts().Delete(ctx, id)
	return err
}

var (
	imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	docExts   = []string{".pdf", ".doc", ".docx", ".ppt", ".pptx", ".txt"}
)

func mediaKindExts(kind string) []string {
	switch kind {
	case domain.MediaImage:
		return imageExts
	case domain.MediaVideo:
		return videoExts
	case domain.MediaDocument:
		return docExts
	}
	return nil
}

func (c *ContentServiceImpl) CreateMedia(ctx context.Context, kind string, uploader domain.UserID, r dto.MediaRequest) (*domain.MediaAsset, error) {
	if !domain.ValidMediaKind(kind) {
		return nil, domain.ErrInvalidInput
	}
	title := strings.TrimSpace(r.Title)
	if title == "" || r.URL == "" || !validMediaURL(r.URL, mediaKindExts(kind)) {
		return nil, domain.ErrInvalidInput
	}
	taken, err := c.store.Media().TitleTaken(ctx, kind, title, uploader, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrInvalidInput
	}
	tags, err := c.resolveTags(ctx, r.Tags)
	if err != nil {
		return nil, err
	}
	m := &domain.MediaAsset{
		ID:           uuid.New(),
		Kind:         kind,
		Title:        title,
		Description:  r.Description,
		URL:          r.URL,
		UploadedByID: uploader,
		Tags:         tags,
		UploadedAt:   time.Now().UTC(),
	}
	if err := c.store.Media().Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *ContentServiceImpl) GetMedia(ctx context.Context, id domain.MediaID) (*domain.MediaAsset, error) {
	m, err := c.store.Media().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return m, nil
}

func (c *ContentServiceImpl) ListMedia(ctx context.Context, f store.MediaFilter) (*dto.Page[domain.MediaAsset], error) {
	if f.Kind != "" && !domain.ValidMediaKind(f.Kind) {
		return nil, domain.ErrInvalidInput
	}
	f.Limit = clampLimit(f.Limit)
	items, total, err := c.store.Media().List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.MediaAsset]{Count: total, Results: items}, nil
}

func (c *ContentServiceImpl) UpdateMedia(ctx context.Context, id domain.MediaID, actor *domain.UserProfile, r dto.MediaRequest) (*domain.MediaAsset, error) {
	m, err := c.store.Media().GetByID(ctx, id)
	if err != nil {
		return nil, mapNotFound(err)
	}
	if !canManage(actor, m.UploadedByID) {
		return nil, domain.ErrForbidden
	}
	if title := strings.TrimSpace(r.Title); title != "" && title != m.Title {
		taken, err := c.store.Media().TitleTaken(ctx, m.Kind, title, m.UploadedByID, m.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.ErrInvalidInput
		}
		m.Title = title
	}
	if r.Description != "" {
		m.Description = r.Description
	}
	if r.URL != "" {
		if !validMediaURL(r.URL, mediaKindExts(m.Kind)) {
			return nil, domain.ErrInvalidInput
		}
		m.URL = r.URL
	}
	if r.Tags != nil {
		tags, err := c.resolveTags(ctx, r.Tags)
		if err != nil {
			return nil, err
		}
		m.Tags = tags
	}
	if err := c.store.Media().Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (c *ContentServiceImpl) DeleteMedia(ctx context.Context, id domain.MediaID, actor *domain.UserProfile) error {
	m, err := c.store.Media().GetByID(ctx, id)
	if err != nil {
		return mapNotFound(err)
	}
	if !canManage(actor, m.UploadedByID) {
		return domain.ErrForbidden
	}
	_, err = c.store.Media().Delete(ctx, id)
	return err
}
