package event_bus

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	ProposalStatusChanged EventType = "proposal.status.changed"
	ProposalExported      EventType = "proposal.exported"
	TransactionRecorded   EventType = "transaction.recorded"
)

type ProposalStatusChangedEvent struct {
	ProposalUid    string
	ProposalNumber int
	Title          string
	OldStatus      string
	NewStatus      string
	Revision       int
}

type ProposalExportedEvent struct {
	ProposalUid    string
	ProposalNumber int
	Title          string
	Pages          int
}

type TransactionRecordedEvent struct {
	TransactionId int
	Type          string
	Amount        decimal.Decimal
	Category      string
	Date          time.Time
}
