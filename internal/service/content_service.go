package service

import (
	"context"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/store"
)

// ContentService covers tags, written posts (articles and blog posts),
// and uploaded media metadata.
type ContentService interface {
	CreateTag(ctx context.Context, r dto.TagRequest) (*domain.Tag, error)
	ListTags(ctx context.Context, limit, offset int) (*dto.Page[domain.Tag], error)
	DeleteTag(ctx context.Context, id domain.TagID) error

	CreatePost(ctx context.Context, kind string, author domain.UserID, r dto.PostRequest) (*domain.Post, error)
	GetPost(ctx context.Context, id domain.PostID) (*domain.Post, error)
	ListPosts(ctx context.Context, f store.PostFilter) (*dto.Page[domain.Post], error)
	UpdatePost(ctx context.Context, id domain.PostID, actor *domain.UserProfile, r dto.PostRequest) (*domain.Post, error)
	DeletePost(ctx context.Context, id domain.PostID, actor *domain.UserProfile) error

	CreateMedia(ctx context.Context, kind string, uploader domain.UserID, r dto.MediaRequest) (*domain.MediaAsset, error)
	GetMedia(ctx context.Context, id domain.MediaID) (*domain.MediaAsset, error)
	ListMedia(ctx context.Context, f store.MediaFilter) (*dto.Page[domain.MediaAsset], error)
	UpdateMedia(ctx context.Context, id domain.MediaID, actor *domain.UserProfile, r dto.MediaRequest) (*domain.MediaAsset, error)
	DeleteMedia(ctx context.Context, id domain.MediaID, actor *domain.UserProfile) error
}
