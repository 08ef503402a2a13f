package proposal

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

var (
	ErrProposalNotFound  = errors.New("proposal not found")
	ErrProposalInvalid   = errors.New("proposal data invalid")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrUnknownService    = errors.New("proposal item references an unknown service")
)

// allowedTransitions encodes the proposal pipeline: draft moves forward to
// sent or pending, sent and pending are adjacent kanban columns, accepted
// and rejected are terminal.
var allowedTransitions = map[Status][]Status{
	StatusDraft:   {StatusSent, StatusPending},
	StatusSent:    {StatusPending, StatusAccepted, StatusRejected},
	StatusPending: {StatusSent, StatusAccepted, StatusRejected},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

type Client struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Item is a proposal line. Service data is snapshotted at the time the item
// is added, so later catalog edits never change an issued proposal.
type Item struct {
	ServiceID   int
	Name        string
	Description string
	PriceType   string
	UnitPrice   decimal.Decimal
	Quantity    decimal.Decimal
	LineTotal   decimal.Decimal
	Position    int
}

type Proposal struct {
	ID             int
	Uid            string
	Number         int
	Revision       int
	Client         Client
	Title          string
	Description    string
	Items          []Item
	Notes          string
	PaymentMethods []string
	ValidityDays   int
	Status         Status
	CreatedAt      time.Time
	SentAt         *time.Time
	AcceptedAt     *time.Time
	PdfGeneratedAt *time.Time
}

// Total is the sum of all line totals.
func (p Proposal) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range p.Items {
		total = total.Add(item.LineTotal)
	}
	return total
}

func (p Proposal) Validate() error {
	if p.Title == "" {
		return errors.Join(ErrProposalInvalid, errors.New("title is required"))
	}
	if p.Client.Name == "" {
		return errors.Join(ErrProposalInvalid, errors.New("client name is required"))
	}
	if len(p.Items) == 0 {
		return errors.Join(ErrProposalInvalid, errors.New("at least one item is required"))
	}
	for _, item := range p.Items {
		if !item.Quantity.IsPositive() {
			return errors.Join(ErrProposalInvalid, errors.New("item quantity must be positive"))
		}
	}
	if p.ValidityDays < 0 {
		return errors.Join(ErrProposalInvalid, errors.New("validity days must not be negative"))
	}
	return nil
}
