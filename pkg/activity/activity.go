package activity

import "time"

type EntryType string

const (
	EntryProposalStatus EntryType = "proposal_status"
	EntryProposalExport EntryType = "proposal_export"
	EntryTransaction    EntryType = "transaction"
)

// Entry is one line in the recent activity feed shown on the dashboard.
type Entry struct {
	Type       EntryType
	Message    string
	Reference  string
	OccurredAt time.Time
}
