package models

import "time"

// Donation is an append-only ledger entry linking a donor and a cause.
// ProviderEventID is the payment provider's event id and doubles as the
// idempotency key: the donations table carries a UNIQUE constraint on it, so
// a redelivered webhook event can never credit a cause twice.
type Donation struct {
	ID              int64     `json:"id"`
	DonorID         int64     `json:"donor_id"`
	CauseID         int64     `json:"cause_id"`
	Amount          float64   `json:"amount"`
	ProviderEventID string    `json:"provider_event_id"`
	CreatedAt       time.Time `json:"created_at"`
}
