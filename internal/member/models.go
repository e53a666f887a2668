// Package member holds the association member registry: the people the levy,
// fine, and disciplinary modules all reference.
package member

import (
	"time"

	"taxiassoc/internal/audit"
)

// Member is one association member. Squad numbers are unique across the
// association and used as the human-facing identifier.
type Member struct {
	ID            int64     `json:"assoc_member_id"`
	Name          string    `json:"name"`
	ContactNumber string    `json:"contact_number"`
	SquadNumber   string    `json:"squad_number"`
	JoinedAt      time.Time `json:"joined_at"`
	Blacklisted   bool      `json:"blacklisted"`
	CreatedBy     string    `json:"created_by"`
	UpdatedBy     string    `json:"updated_by,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (m *Member) AuditTable() string   { return "assoc_member" }
func (m *Member) AuditRecordID() int64 { return m.ID }

func (m *Member) AuditSnapshot() map[string]any {
	return map[string]any{
		"assoc_member_id": m.ID,
		"name":            m.Name,
		"contact_number":  m.ContactNumber,
		"squad_number":    m.SquadNumber,
		"joined_at":       audit.Time(m.JoinedAt),
		"blacklisted":     m.Blacklisted,
		"created_by":      m.CreatedBy,
		"updated_by":      m.UpdatedBy,
		"created_at":      audit.Time(m.CreatedAt),
		"updated_at":      audit.Time(m.UpdatedAt),
	}
}

// CreateRequest is the payload for registering a member.
type CreateRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	SquadNumber   string `json:"squad_number"`
}

// UpdateRequest is the payload for editing a member's details.
type UpdateRequest struct {
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	SquadNumber   string `json:"squad_number"`
}
