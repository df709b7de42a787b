package service

import (
	"context"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
)

type AuthService interface {
	Register(ctx context.Context, r dto.RegisterRequest) (*dto.RegisterResponse, error)
	VerifyEmail(ctx context.Context, r dto.VerifyEmailRequest) error
	Login(ctx context.Context, r dto.LoginRequest) (*dto.LoginResponse, error)
	RequestPasswordReset(ctx context.Context, email string) error
	ConfirmPasswordReset(ctx context.Context, r dto.PasswordResetConfirm) error
	UpdateProfile(ctx context.Context, userID domain.UserID, r dto.ProfileUpdate) (*domain.UserProfile, error)
	DeleteAccount(ctx context.Context, userID domain.UserID) error
}
