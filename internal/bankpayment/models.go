// Package bankpayment records money deposited into the association's bank
// account and links each deposit to the levy or fine it settles.
package bankpayment

import (
	"time"

	"taxiassoc/internal/audit"
)

// BankPayment is one bank deposit. Transaction references are unique so a
// statement line cannot be captured twice.
type BankPayment struct {
	ID                   int64     `json:"bank_payment_id"`
	MemberID             int64     `json:"assoc_member_id"`
	LevyPaymentID        int64     `json:"levy_payment_id,omitempty"`
	LevyFineID           int64     `json:"levy_fine_id,omitempty"`
	BankName             string    `json:"bank_name"`
	BranchCode           string    `json:"branch_code"`
	AccountNumber        string    `json:"account_number"`
	TransactionReference string    `json:"transaction_reference"`
	Amount               float64   `json:"amount"`
	PaymentDate          time.Time `json:"payment_date"`
	Verified             bool      `json:"verified"`
	VerifiedBy           string    `json:"verified_by,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

func (p *BankPayment) AuditTable() string   { return "bank_payment" }
func (p *BankPayment) AuditRecordID() int64 { return p.ID }

func (p *BankPayment) AuditSnapshot() map[string]any {
	return map[string]any{
		"bank_payment_id":       p.ID,
		"assoc_member_id":       p.MemberID,
		"levy_payment_id":       p.LevyPaymentID,
		"levy_fine_id":          p.LevyFineID,
		"bank_name":             p.BankName,
		"branch_code":           p.BranchCode,
		"account_number":        p.AccountNumber,
		"transaction_reference": p.TransactionReference,
		"amount":                p.Amount,
		"payment_date":          audit.Time(p.PaymentDate),
		"verified":              p.Verified,
		"verified_by":           p.VerifiedBy,
		"created_at":            audit.Time(p.CreatedAt),
		"updated_at":            audit.Time(p.UpdatedAt),
	}
}

// RecordRequest is the payload for capturing a bank deposit.
type RecordRequest struct {
	MemberID             int64     `json:"assoc_member_id"`
	LevyPaymentID        int64     `json:"levy_payment_id"`
	LevyFineID           int64     `json:"levy_fine_id"`
	BankName             string    `json:"bank_name"`
	BranchCode           string    `json:"branch_code"`
	AccountNumber        string    `json:"account_number"`
	TransactionReference string    `json:"transaction_reference"`
	Amount               float64   `json:"amount"`
	PaymentDate          time.Time `json:"payment_date"`
}
