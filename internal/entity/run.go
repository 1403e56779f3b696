package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/receiving-normalizer/constants"
)

// Run is one row in the runs ledger: a single reconciliation invocation
// with its per-stage counts and terminal status.
type Run struct {
	ID            uuid.UUID
	Vendor        string
	StartedAt     time.Time
	FinishedAt    *time.Time
	Status        constants.RunStatus
	InvoiceFiles  int
	ManifestFiles int
	InvoiceLines  int
	ManifestLines int
	OutputRows    int
	ErrorMessage  string
}
