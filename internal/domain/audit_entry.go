package domain

import "time"

// AuditAction enumerates staff-gated actions.
type AuditAction string

const (
	AuditActionStamp  AuditAction = "STAMP"
	AuditActionRedeem AuditAction = "REDEEM"
)

// AuditResult classifies the outcome of a staff-gated attempt.
type AuditResult string

const (
	AuditResultSuccess AuditResult = "SUCCESS"
	AuditResultDenied  AuditResult = "DENIED"
	AuditResultError   AuditResult = "ERROR"
)

// AuditEntry is an immutable record of a staff-gated command attempt,
// including denied ones. Entries are append-only and never mutated.
type AuditEntry struct {
	ID               string
	ActorPhone       string
	Action           AuditAction
	TargetCustomerID string
	Result           AuditResult
	Reason           string
	CreatedAt        time.Time
}
