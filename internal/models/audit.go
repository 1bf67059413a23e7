package models

import "time"

// AuditAction constants represent actions to be journaled.
const (
	AuditActionUserPromote       = "USER_PROMOTE"
	AuditActionUserDelete        = "USER_DELETE"
	AuditActionApplicationAccept = "APPLICATION_ACCEPT"
	AuditActionApplicationReject = "APPLICATION_REJECT"
	AuditActionClassAccept       = "CLASS_ACCEPT"
	AuditActionClassReject       = "CLASS_REJECT"
	AuditActionClassDelete       = "CLASS_DELETE"
	AuditActionPartialWrite      = "PARTIAL_WRITE"
	AuditActionRepairFailed      = "REPAIR_FAILED"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorEmail *string   `db:"actor_email" json:"actor_email,omitempty"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID *string   `db:"resource_id" json:"resource_id,omitempty"`
	Payload    []byte    `db:"payload" json:"payload,omitempty"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AuditFilter narrows journal queries.
type AuditFilter struct {
	Action   string
	Resource string
	Limit    int
}
