package domain

import "time"

const (
	TxnPending   = "pending"
	TxnCompleted = "completed"
	TxnFailed    = "failed"
	TxnRefunded  = "refunded"
)

// Transaction records a charge submitted to the external payment gateway.
// Amounts are integer cents; the gateway itself is an opaque collaborator.
type Transaction struct {
	ID              TransactionID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          UserID        `gorm:"type:uuid;index" json:"userId"`
	Type            string        `gorm:"not null;default:donation" json:"type"`
	AmountCents     int64         `gorm:"not null" json:"amountCents"`
	Currency        string        `gorm:"not null;default:USD" json:"currency"`
	Status          string        `gorm:"not null;default:pending" json:"status"`
	Gateway         string        `gorm:"not null" json:"gateway"`
	GatewayRef      string        `json:"gatewayRef"`
	GatewayRespCode string        `json:"gatewayRespCode"`
	GatewayRespMsg  string        `gorm:"type:text" json:"gatewayRespMsg,omitempty"`
	CreatedAt       time.Time     `gorm:"not null" json:"createdAt"`
	UpdatedAt       time.Time     `gorm:"not null" json:"updatedAt"`
}

func (Transaction) TableName() string { return "transactions" }

type Donation struct {
	TransactionID TransactionID `gorm:"type:uuid;primaryKey" json:"transactionId"`
	Recurring     bool          `gorm:"not null;default:false" json:"recurring"`
	Frequency     string        `json:"frequency,omitempty"` // weekly|monthly|yearly when recurring
	StartDate     *time.Time    `json:"startDate,omitempty"`
	EndDate       *time.Time    `json:"endDate,omitempty"`
}

func (Donation) TableName() string { return "donations" }
