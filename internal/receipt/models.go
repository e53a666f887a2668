// Package receipt issues proof-of-payment receipts for levies, fines and
// bank deposits.
package receipt

import "time"

// Receipt is one issued receipt. The optional foreign keys tie it to the
// payment it proves.
type Receipt struct {
	ID            int64     `json:"receipt_id"`
	MemberID      int64     `json:"assoc_member_id"`
	LevyPaymentID int64     `json:"levy_payment_id,omitempty"`
	LevyFineID    int64     `json:"levy_fine_id,omitempty"`
	BankPaymentID int64     `json:"bank_payment_id,omitempty"`
	ReceiptNumber string    `json:"receipt_number"`
	IssuedBy      string    `json:"issued_by"`
	IssuedDate    time.Time `json:"issued_date"`
}

// GenerateRequest is the payload for issuing a receipt.
type GenerateRequest struct {
	MemberID      int64  `json:"assoc_member_id"`
	LevyPaymentID int64  `json:"levy_payment_id"`
	LevyFineID    int64  `json:"levy_fine_id"`
	BankPaymentID int64  `json:"bank_payment_id"`
	ReceiptNumber string `json:"receipt_number"`
}
