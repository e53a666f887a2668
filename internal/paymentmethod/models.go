// Package paymentmethod maintains the catalogue of ways money reaches the
// association (cash, EFT, debit order). Fines and levy payments reference a
// method by id.
package paymentmethod

// Method is one payment channel.
type Method struct {
	ID          int64  `json:"payment_method_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// CreateRequest is the payload for adding a payment method.
type CreateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
