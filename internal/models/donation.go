package models

import "time"

// DonationStatus tracks the lifecycle of a recorded donation.
type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
)

// Donation is a recorded contribution. The transaction id is synthesized at
// creation time; there is no payment gateway behind it.
type Donation struct {
	ID            string         `db:"id" json:"id"`
	UserID        string         `db:"user_id" json:"user_id"`
	Amount        float64        `db:"amount" json:"amount"`
	Purpose       string         `db:"purpose" json:"purpose"`
	PaymentMethod string         `db:"payment_method" json:"payment_method"`
	TransactionID string         `db:"transaction_id" json:"transaction_id"`
	Status        DonationStatus `db:"status" json:"status"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// DonationRequest is the donation intake payload.
type DonationRequest struct {
	Amount        float64 `json:"amount" form:"amount" validate:"required,gt=0"`
	Purpose       string  `json:"purpose" form:"purpose" validate:"required"`
	PaymentMethod string  `json:"payment_method" form:"payment_method" validate:"required"`
}

// MonthlyDonation is one group of the monthly donation aggregation.
type MonthlyDonation struct {
	Month string  `db:"month" json:"month"`
	Total float64 `db:"total" json:"total"`
}
