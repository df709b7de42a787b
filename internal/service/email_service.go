package service

import "context"

type EmailService interface {
	SendOTP(ctx context.Context, to, firstName, code string) error
	SendWelcome(ctx context.Context, to, firstName string) error
	SendPasswordReset(ctx context.Context, to, firstName, link, code string) error
}
