package service

import (
	"context"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/store"
)

// ChurchService covers the branch, event, and sermon resources.
type ChurchService interface {
	CreateBranch(ctx context.Context, r dto.BranchRequest) (*domain.ChurchBranch, error)
	GetBranch(ctx context.Context, id domain.BranchID) (*domain.ChurchBranch, error)
	ListBranches(ctx context.Context, limit, offset int) (*dto.Page[domain.ChurchBranch], error)
	UpdateBranch(ctx context.Context, id domain.BranchID, r dto.BranchRequest) (*domain.ChurchBranch, error)
	DeleteBranch(ctx context.Context, id domain.BranchID) error

	CreateEvent(ctx context.Context, organizer domain.UserID, r dto.EventRequest) (*domain.Event, error)
	GetEvent(ctx context.Context, id domain.EventID) (*domain.Event, error)
	ListEvents(ctx context.Context, f store.EventFilter) (*dto.Page[domain.Event], error)
	UpdateEvent(ctx context.Context, id domain.EventID, actor *domain.UserProfile, r dto.EventRequest) (*domain.Event, error)
	DeleteEvent(ctx context.Context, id domain.EventID, actor *domain.UserProfile) error

	CreateSermon(ctx context.Context, speaker domain.UserID, r dto.SermonRequest) (*domain.Sermon, error)
	GetSermon(ctx context.Context, id domain.SermonID) (*domain.Sermon, error)
	ListSermons(ctx context.Context, f store.SermonFilter) (*dto.Page[domain.Sermon], error)
	UpdateSermon(ctx context.Context, id domain.SermonID, actor *domain.UserProfile, r dto.SermonRequest) (*domain.Sermon, error)
	DeleteSermon(ctx context.Context, id domain.SermonID, actor *domain.UserProfile) error
}
