package gamequeue

import "github.com/google/uuid"

// LedgerAuditJob rebuilds every active game's ledger.
type LedgerAuditJob struct{}

// Kind returns the job type identifier for River
func (LedgerAuditJob) Kind() string { return "ledger_audit" }

// ReconcileGameJob rebuilds a single game's ledger.
type ReconcileGameJob struct {
	GameID uuid.UUID `json:"game_id"`
}

// Kind returns the job type identifier for River
func (ReconcileGameJob) Kind() string { return "ledger_reconcile" }
