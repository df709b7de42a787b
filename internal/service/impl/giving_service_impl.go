package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/dto"
	"churchapp/internal/service"
	"churchapp/internal/store"

	"github.com/google/uuid"
)

var recurringFrequencies = map[string]bool{
	"weekly":  true,
	"monthly": true,
	"yearly":  true,
}

type GivingServiceImpl struct {
	store   *store.Store
	gateway service.Gateway
}

func NewGivingService(st *store.Store, gw service.Gateway) *GivingServiceImpl {
	return &GivingServiceImpl{store: st, gateway: gw}
}

func (g *GivingServiceImpl) Donate(ctx context.Context, userID domain.UserID, r dto.DonationRequest) (*dto.DonationResponse, error) {
	if r.AmountCents <= 0 {
		return nil, domain.ErrInvalidInput
	}
	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if currency == "" {
		currency = "USD"
	}
	if r.Recurring && !recurringFrequencies[r.Frequency] {
		return nil, domain.ErrInvalidInput
	}

	// The pending row is committed before the charge so a gateway crash
	// leaves an auditable record instead of silence.
	now := time.Now().UTC()
	txn := &domain.Transaction{
		ID:          uuid.New(),
		UserID:      userID,
		Type:        "donation",
		AmountCents: r.AmountCents,
		Currency:    currency,
		Status:      domain.TxnPending,
		Gateway:     g.gateway.Name(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := g.store.Giving().CreateTransaction(ctx, txn); err != nil {
		return nil, err
	}

	ref, respCode, err := g.gateway.Charge(ctx, r.AmountCents, currency)
	if err != nil {
		if uerr := g.store.Giving().UpdateTransactionStatus(ctx, txn.ID, domain.TxnFailed, respCode, err.Error()); uerr != nil {
			slog.Error("failed to mark transaction failed", "txn_id", txn.ID, "error", uerr)
		}
		return &dto.DonationResponse{
			TransactionID: txn.ID.String(),
			Status:        domain.TxnFailed,
		}, nil
	}

	err = g.store.WithTx(ctx, func(tx *store.Store) error {
		if err := tx.DB.WithContext(ctx).Model(&domain.Transaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]any{
				"status":            domain.TxnCompleted,
				"gateway_ref":       ref,
				"gateway_resp_code": respCode,
			}).Error; err != nil {
			return err
		}
		d := &domain.Donation{
			TransactionID: txn.ID,
			Recurring:     r.Recurring,
		}
		if r.Recurring {
			d.Frequency = r.Frequency
			start := now
			d.StartDate = &start
		}
		return tx.Giving().CreateDonation(ctx, d)
	})
	if err != nil {
		return nil, err
	}

	return &dto.DonationResponse{
		TransactionID: txn.ID.String(),
		Status:        domain.TxnCompleted,
		GatewayRef:    ref,
	}, nil
}

func (g *GivingServiceImpl) History(ctx context.Context, userID domain.UserID, limit, offset int) (*dto.Page[domain.Transaction], error) {
	limit = clampLimit(limit)
	items, total, err := g.store.Giving().ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return &dto.Page[domain.Transaction]{Count: total, Results: items}, nil
}
