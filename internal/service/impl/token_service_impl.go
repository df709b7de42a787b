package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"churchapp/internal/domain"
	"churchapp/internal/observability/metrics"
	"churchapp/internal/store"
)

// TokenServiceImpl backs bearer auth with one opaque token row per user.
type TokenServiceImpl struct {
	store    *store.Store
	keyBytes int
}

func NewTokenService(st *store.Store, keyBytes int) *TokenServiceImpl {
	if keyBytes <= 0 {
		keyBytes = 20
	}
	return &TokenServiceImpl{store: st, keyBytes: keyBytes}
}

func (t *TokenServiceImpl) IssueOrFetch(ctx context.Context, userID domain.UserID) (*domain.AuthToken, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(result).Inc()
	}()

	var out *domain.AuthToken
	err := t.store.WithTx(ctx, func(tx *store.Store) error {
		existing, err := tx.Tokens().GetByUserID(ctx, userID)
		if err == nil {
			out = existing
			return nil
		}
		if !errors.Is(err, store.ErrRecordNotFound) {
			return err
		}
		key, err := t.newKey()
		if err != nil {
			return err
		}
		tok := &domain.AuthToken{
			Key:       key,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Tokens().Create(ctx, tok); err != nil {
			return err
		}
		out = tok
		return nil
	})
	if err != nil {
		result = "failure"
		return nil, err
	}
	return out, nil
}

func (t *TokenServiceImpl) Authenticate(ctx context.Context, key string) (*domain.UserProfile, error) {
	if key == "" {
		return nil, domain.ErrUnauthenticated
	}
	tok, err := t.store.Tokens().GetByKey(ctx, key)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	user, err := t.store.Users().GetByID(ctx, tok.UserID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

func (t *TokenServiceImpl) Revoke(ctx context.Context, key string) error {
	if key == "" {
		return domain.ErrUnauthenticated
	}
	return t.store.Tokens().DeleteByKey(ctx, key)
}

func (t *TokenServiceImpl) RevokeForUser(ctx context.Context, userID domain.UserID) error {
	_, err := t.store.Tokens().DeleteByUserID(ctx, userID)
	return err
}

func (t *TokenServiceImpl) newKey() (string, error) {
	buf := make([]byte, t.keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
