// Package application handles membership applications: prospective members
// apply, the secretary reviews first, then the chairperson.
package application

import "time"

// Status is the review outcome of an application.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// Valid reports whether s is one of the known application statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Application is one membership application moving through the two-stage
// review.
type Application struct {
	ID                  int64     `json:"application_id"`
	ApplicantName       string    `json:"applicant_name"`
	ContactNumber       string    `json:"contact_number"`
	Status              Status    `json:"application_status"`
	RouteID             int64     `json:"route_id,omitempty"`
	RouteName           string    `json:"route_name,omitempty"`
	SecretaryReviewed   bool      `json:"secretary_reviewed"`
	ChairpersonReviewed bool      `json:"chairperson_reviewed"`
	DecisionNotes       string    `json:"decision_notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Document is a supporting file lodged with an application. Files live on
// shared storage; only the path is recorded here.
type Document struct {
	ID            int64     `json:"document_id"`
	ApplicationID int64     `json:"application_id"`
	DocumentType  string    `json:"document_type"`
	DocumentPath  string    `json:"document_path"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

// SubmitRequest is the payload for lodging an application.
type SubmitRequest struct {
	ApplicantName string `json:"applicant_name"`
	ContactNumber string `json:"contact_number"`
	RouteID       int64  `json:"route_id"`
}

// ReviewRequest carries a reviewer's decision and notes.
type ReviewRequest struct {
	Decision      Status `json:"decision"`
	DecisionNotes string `json:"decision_notes"`
}

// AttachDocumentRequest records a document against an application.
type AttachDocumentRequest struct {
	DocumentType string `json:"document_type"`
	DocumentPath string `json:"document_path"`
}

// UpdateStatusRequest moves an application to an explicit status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}
