package dto

type DonationRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency,omitempty"`
	Recurring   bool   `json:"recurring,omitempty"`
	Frequency   string `json:"frequency,omitempty"`
}

type DonationResponse struct {
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
	GatewayRef    string `json:"gateway_ref"`
}
