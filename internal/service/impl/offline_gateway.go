package impl

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

// OfflineGateway accepts every charge and mints a local reference. It
// stands in until a real processor integration is configured.
type OfflineGateway struct{}

func (OfflineGateway) Name() string { return "offline" }

func (OfflineGateway) Charge(ctx context.Context, amountCents int64, currency string) (ref, respCode string, err error) {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return "", "", err
	}
	return "off_" + hex.EncodeToString(buf), "00", nil
}
