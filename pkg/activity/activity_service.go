package activity

import (
	"context"
	"fmt"
	"sync"

	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/pkg/user"
)

// maxEntries bounds the per-user feed. The feed is derived data rebuilt from
// events, so losing old entries on restart is acceptable.
const maxEntries = 50

type ActivityService interface {
	Recent(ctx context.Context) ([]Entry, error)
}

// Feed keeps a bounded, in-memory, per-user activity log fed by bus events.
type Feed struct {
	mu      sync.RWMutex
	entries map[int][]Entry
}

func NewFeed() *Feed {
	return &Feed{entries: map[int][]Entry{}}
}

// Subscribe wires the feed into the event bus. Handlers resolve the user from
// the event context, so events published outside a user scope are dropped.
func (f *Feed) Subscribe(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped[event_bus.ProposalStatusChangedEvent](bus, event_bus.ProposalStatusChanged,
		func(e event_bus.EventT[event_bus.ProposalStatusChangedEvent]) error {
			f.record(e.Context(), Entry{
				Type: EntryProposalStatus,
				Message: fmt.Sprintf("Proposta Nº %d (%s) movida de %s para %s",
					e.Data.ProposalNumber, e.Data.Title, e.Data.OldStatus, e.Data.NewStatus),
				Reference:  e.Data.ProposalUid,
				OccurredAt: e.Timestamp,
			})
			return nil
		})

	event_bus.SubscribeTyped[event_bus.ProposalExportedEvent](bus, event_bus.ProposalExported,
		func(e event_bus.EventT[event_bus.ProposalExportedEvent]) error {
			f.record(e.Context(), Entry{
				Type: EntryProposalExport,
				Message: fmt.Sprintf("Proposta Nº %d (%s) exportada com %d página(s)",
					e.Data.ProposalNumber, e.Data.Title, e.Data.Pages),
				Reference:  e.Data.ProposalUid,
				OccurredAt: e.Timestamp,
			})
			return nil
		})

	event_bus.SubscribeTyped[event_bus.TransactionRecordedEvent](bus, event_bus.TransactionRecorded,
		func(e event_bus.EventT[event_bus.TransactionRecordedEvent]) error {
			f.record(e.Context(), Entry{
				Type: EntryTransaction,
				Message: fmt.Sprintf("Lançamento de %s: R$ %s em %s",
					e.Data.Type, e.Data.Amount.StringFixed(2), e.Data.Category),
				OccurredAt: e.Timestamp,
			})
			return nil
		})
}

// Recent returns the current user's feed, newest first.
func (f *Feed) Recent(ctx context.Context) ([]Entry, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	entries := f.entries[userId]
	recent := make([]Entry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		recent = append(recent, entries[i])
	}
	return recent, nil
}

func (f *Feed) record(ctx context.Context, entry Entry) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	entries := append(f.entries[userId], entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	f.entries[userId] = entries
}
