package constants

// RunStatus is the canonical status for rows in the runs ledger.
type RunStatus string

// Stable values (store these exact strings in DB).
const (
	RunStatusRunning   RunStatus = "RUNNING"   // in progress
	RunStatusSucceeded RunStatus = "SUCCEEDED" // output written
	RunStatusFailed    RunStatus = "FAILED"    // terminal failure, no output produced
)
