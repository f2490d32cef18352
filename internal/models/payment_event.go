package models

// PaymentEvent is a verified webhook event from the payment provider,
// decoded into a closed set of variants. Charge is non-nil only for
// "charge.succeeded" events; every other event type is carried as-is in
// Type and acknowledged without side effects.
type PaymentEvent struct {
	ID     string
	Type   string
	Charge *ChargeSucceeded
}

// ChargeSucceeded holds the fields settlement needs from a succeeded charge.
// AmountMinor is in the currency's minor units (cents).
type ChargeSucceeded struct {
	AmountMinor  int64
	CauseID      string
	BillingEmail string
}
