// Package levypayment tracks the weekly levy each member owes the
// association and the settlement of those levies.
package levypayment

import (
	"time"

	"taxiassoc/internal/audit"
)

// Status is the settlement state of a levy payment.
type Status string

const (
	StatusPending Status = "Pending"
	StatusPaid    Status = "Paid"
)

// Valid reports whether s is one of the known levy payment statuses.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusPaid
}

// Payment is one member's levy for one week.
type Payment struct {
	ID              int64     `json:"levy_payment_id"`
	MemberID        int64     `json:"assoc_member_id"`
	WeekStartDate   time.Time `json:"week_start_date"`
	WeekEndDate     time.Time `json:"week_end_date"`
	Amount          float64   `json:"amount"`
	Status          Status    `json:"status"`
	PaymentMethodID int64     `json:"payment_method_id,omitempty"`
	ReceiptNumber   string    `json:"receipt_number,omitempty"`
	CreatedBy       string    `json:"created_by"`
	UpdatedBy       string    `json:"updated_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (p *Payment) AuditTable() string   { return "levy_payment" }
func (p *Payment) AuditRecordID() int64 { return p.ID }

func (p *Payment) AuditSnapshot() map[string]any {
	return map[string]any{
		"levy_payment_id":   p.ID,
		"assoc_member_id":   p.MemberID,
		"week_start_date":   audit.Time(p.WeekStartDate),
		"week_end_date":     audit.Time(p.WeekEndDate),
		"amount":            p.Amount,
		"status":            string(p.Status),
		"payment_method_id": p.PaymentMethodID,
		"receipt_number":    p.ReceiptNumber,
		"created_by":        p.CreatedBy,
		"updated_by":        p.UpdatedBy,
		"created_at":        audit.Time(p.CreatedAt),
		"updated_at":        audit.Time(p.UpdatedAt),
	}
}

// RecordRequest is the payload for recording a week's levy.
type RecordRequest struct {
	MemberID      int64     `json:"assoc_member_id"`
	WeekStartDate time.Time `json:"week_start_date"`
	WeekEndDate   time.Time `json:"week_end_date"`
	Amount        float64   `json:"amount"`
}

// ProcessRequest settles a levy through a payment method.
type ProcessRequest struct {
	PaymentMethodID int64 `json:"payment_method_id"`
}

// AttachReceiptRequest links an issued receipt number to a levy payment.
type AttachReceiptRequest struct {
	ReceiptNumber string `json:"receipt_number"`
}
