// Package fine manages levy fines: monetary penalties issued against members
// for association rule breaches.
package fine

import (
	"time"

	"taxiassoc/internal/audit"
)

// Status is the payment lifecycle of a fine.
type Status string

const (
	StatusUnpaid Status = "Unpaid"
	StatusOwing  Status = "Owing"
	StatusPaid   Status = "Paid"
)

// Valid reports whether s is one of the known fine statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusUnpaid, StatusOwing, StatusPaid:
		return true
	}
	return false
}

// Fine is one levy fine. PaymentMethodID and ReceiptNumber stay empty until
// the fine is paid and receipted.
type Fine struct {
	ID              int64     `json:"levy_fine_id"`
	MemberID        int64     `json:"assoc_member_id"`
	Amount          float64   `json:"amount"`
	Reason          string    `json:"reason"`
	Status          Status    `json:"status"`
	PaymentMethodID int64     `json:"payment_method_id,omitempty"`
	ReceiptNumber   string    `json:"receipt_number,omitempty"`
	CreatedBy       string    `json:"created_by"`
	UpdatedBy       string    `json:"updated_by,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (f *Fine) AuditTable() string   { return "levy_fine" }
func (f *Fine) AuditRecordID() int64 { return f.ID }

func (f *Fine) AuditSnapshot() map[string]any {
	return map[string]any{
		"levy_fine_id":      f.ID,
		"assoc_member_id":   f.MemberID,
		"amount":            f.Amount,
		"reason":            f.Reason,
		"status":            string(f.Status),
		"payment_method_id": f.PaymentMethodID,
		"receipt_number":    f.ReceiptNumber,
		"created_by":        f.CreatedBy,
		"updated_by":        f.UpdatedBy,
		"created_at":        audit.Time(f.CreatedAt),
		"updated_at":        audit.Time(f.UpdatedAt),
	}
}

// IssueRequest is the payload for issuing a fine.
type IssueRequest struct {
	MemberID int64   `json:"assoc_member_id"`
	Amount   float64 `json:"amount"`
	Reason   string  `json:"reason"`
}

// ProcessPaymentRequest settles a fine through a payment method.
type ProcessPaymentRequest struct {
	PaymentMethodID int64 `json:"payment_method_id"`
}

// UpdateStatusRequest moves a fine to an explicit status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// AttachReceiptRequest links an issued receipt number to a fine.
type AttachReceiptRequest struct {
	ReceiptNumber string `json:"receipt_number"`
}
