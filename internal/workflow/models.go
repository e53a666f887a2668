// Package workflow runs the disciplinary process a levy fine can be
// contested through: a case is opened against a fine, the secretary decides
// first, and the chairperson closes it out (or overrides the secretary gate).
package workflow

import (
	"time"

	"taxiassoc/internal/audit"
)

// Decision is one reviewer's verdict on a case.
type Decision string

const (
	DecisionPending  Decision = "Pending"
	DecisionApproved Decision = "Approved"
	DecisionRejected Decision = "Rejected"

	// DecisionNotRequired marks the chairperson step skipped after a
	// secretary rejection.
	DecisionNotRequired Decision = "Not Required"
)

// FinalStatus is the lifecycle state of a workflow.
type FinalStatus string

const (
	StatusOngoing  FinalStatus = "Ongoing"
	StatusResolved FinalStatus = "Resolved"
)

// Workflow is one disciplinary case. There is at most one per fine. Once
// FinalStatus is Resolved the record never changes again.
type Workflow struct {
	ID                  int64       `json:"disciplinary_workflow_id"`
	LevyFineID          int64       `json:"levy_fine_id"`
	MemberID            int64       `json:"assoc_member_id"`
	MemberName          string      `json:"member_name,omitempty"`
	CaseStatement       string      `json:"case_statement"`
	SecretaryDecision   Decision    `json:"secretary_decision"`
	ChairpersonDecision Decision    `json:"chairperson_decision"`
	PaymentArrangement  string      `json:"payment_arrangement,omitempty"`
	ChairpersonOverride bool        `json:"chairperson_override"`
	FinalStatus         FinalStatus `json:"final_status"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

func (w *Workflow) AuditTable() string   { return "disciplinary_workflow" }
func (w *Workflow) AuditRecordID() int64 { return w.ID }

func (w *Workflow) AuditSnapshot() map[string]any {
	return map[string]any{
		"disciplinary_workflow_id": w.ID,
		"levy_fine_id":             w.LevyFineID,
		"assoc_member_id":          w.MemberID,
		"case_statement":           w.CaseStatement,
		"secretary_decision":       string(w.SecretaryDecision),
		"chairperson_decision":     string(w.ChairpersonDecision),
		"payment_arrangement":      w.PaymentArrangement,
		"chairperson_override":     w.ChairpersonOverride,
		"final_status":             string(w.FinalStatus),
		"created_at":               audit.Time(w.CreatedAt),
		"updated_at":               audit.Time(w.UpdatedAt),
	}
}

// Resolved reports whether the workflow is terminal.
func (w *Workflow) Resolved() bool {
	return w.FinalStatus == StatusResolved
}

// InitiateRequest opens a case against a fine.
type InitiateRequest struct {
	LevyFineID    int64  `json:"levy_fine_id"`
	MemberID      int64  `json:"assoc_member_id"`
	CaseStatement string `json:"case_statement"`
}

// SecretaryDecisionRequest carries the secretary's verdict.
type SecretaryDecisionRequest struct {
	Decision           Decision `json:"decision"`
	PaymentArrangement string   `json:"payment_arrangement"`
}

// ChairpersonDecisionRequest carries the chairperson's verdict. Override
// lets the chairperson decide while the secretary decision is still Pending.
type ChairpersonDecisionRequest struct {
	Decision           Decision `json:"decision"`
	PaymentArrangement string   `json:"payment_arrangement"`
	Override           bool     `json:"override"`
}
