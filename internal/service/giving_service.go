package service

import (
	"context"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
)

// Gateway is the opaque payment collaborator. Charge either returns a
// reference plus response code, or an error that marks the transaction
// failed.
type Gateway interface {
	Name() string
	Charge(ctx context.Context, amountCents int64, currency string) (ref, respCode string, err error)
}

type GivingService interface {
	Donate(ctx context.Context, userID domain.UserID, r dto.DonationRequest) (*dto.DonationResponse, error)
	History(ctx context.Context, userID domain.UserID, limit, offset int) (*dto.Page[domain.Transaction], error)
}
