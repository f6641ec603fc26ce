package model

import (
	"time"

	"lodge/shared/model"
)

const (
	TableName  = "payments"
	EntityName = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldAmount    = "amount"
	FieldMode      = "mode"
	FieldPaidAt    = "paid_at"
)

const (
	ModeCash       = "CASH"
	ModeOnline     = "ONLINE"
	ModeCreditCard = "CREDIT_CARD"
	ModeDebitCard  = "DEBIT_CARD"
	ModeUPI        = "UPI"
	ModeNetBanking = "NET_BANKING"
	ModeCareTaker  = "CARE_TAKER"
)

// Payment is a ledger entry owned by exactly one booking. Entries keep
// their insertion order for audit display; totals do not depend on it.
type Payment struct {
	ID        string    `db:"id"`
	BookingID string    `db:"booking_id"`
	Amount    int64     `db:"amount"`
	Mode      string    `db:"mode"`
	PaidAt    time.Time `db:"paid_at"`
	model.Metadata
}
