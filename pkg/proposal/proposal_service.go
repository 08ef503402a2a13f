package proposal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/internal/utils"
	"github.com/eletroproposta/eletroproposta/pkg/catalog"
	"github.com/eletroproposta/eletroproposta/pkg/user"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ItemInput references a catalog service; the pricing snapshot is taken
// at creation or update time so later catalog edits do not rewrite history.
type ItemInput struct {
	ServiceID int
	Quantity  decimal.Decimal
}

type Draft struct {
	Client         Client
	Title          string
	Description    string
	Items          []ItemInput
	Notes          string
	PaymentMethods []string
	ValidityDays   int
}

type ProposalService interface {
	Create(ctx context.Context, draft Draft) (Proposal, error)
	GetAll(ctx context.Context, status Status) ([]Proposal, error)
	GetByUid(ctx context.Context, uid string) (Proposal, error)
	Update(ctx context.Context, uid string, draft Draft) (Proposal, error)
	ChangeStatus(ctx context.Context, uid string, status Status) (Proposal, error)
	MarkExported(ctx context.Context, uid string) (Proposal, error)
	Delete(ctx context.Context, uid string) error
	ListRevisions(ctx context.Context, uid string) ([]Revision, error)
}

type ProposalServiceImpl struct {
	repo     Repo
	catalog  catalog.CatalogService
	bus      *event_bus.EventBus
	clock    utils.Clock
	validity int
}

func NewProposalService(repo Repo, catalogService catalog.CatalogService, bus *event_bus.EventBus, clock utils.Clock, defaultValidityDays int) *ProposalServiceImpl {
	return &ProposalServiceImpl{
		repo:     repo,
		catalog:  catalogService,
		bus:      bus,
		clock:    clock,
		validity: defaultValidityDays,
	}
}

func (s *ProposalServiceImpl) Create(ctx context.Context, draft Draft) (Proposal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Proposal{}, err
	}

	items, err := s.snapshotItems(ctx, draft.Items)
	if err != nil {
		return Proposal{}, err
	}

	if draft.ValidityDays <= 0 {
		draft.ValidityDays = s.validity
	}

	now := s.clock.Now()
	proposal := Proposal{
		Uid:            uuid.NewString(),
		Revision:       1,
		Client:         draft.Client,
		Title:          draft.Title,
		Description:    draft.Description,
		Items:          items,
		Notes:          draft.Notes,
		PaymentMethods: draft.PaymentMethods,
		ValidityDays:   draft.ValidityDays,
		Status:         StatusDraft,
		CreatedAt:      now,
	}
	if err := proposal.Validate(); err != nil {
		return Proposal{}, err
	}

	revision := Revision{
		Number:    1,
		Summary:   "Proposal created",
		CreatedAt: now,
	}
	return s.repo.Store(ctx, userId, proposal, revision)
}

func (s *ProposalServiceImpl) GetAll(ctx context.Context, status Status) ([]Proposal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	if status != "" && !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrProposalInvalid, status)
	}
	return s.repo.GetAll(ctx, userId, status)
}

func (s *ProposalServiceImpl) GetByUid(ctx context.Context, uid string) (Proposal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Proposal{}, err
	}
	return s.repo.GetByUid(ctx, userId, uid)
}

func (s *ProposalServiceImpl) Update(ctx context.Context, uid string, draft Draft) (Proposal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Proposal{}, err
	}
	current, err := s.repo.GetByUid(ctx, userId, uid)
	if err != nil {
		return Proposal{}, err
	}

	items, err := s.snapshotItems(ctx, draft.Items)
	if err != nil {
		return Proposal{}, err
	}
	if draft.ValidityDays <= 0 {
		draft.ValidityDays = s.validity
	}

	updated := current
	updated.Client = draft.Client
	updated.Title = draft.Title
	updated.Description = draft.Description
	updated.Items = items
	updated.Notes = draft.Notes
	updated.PaymentMethods = draft.PaymentMethods
	updated.ValidityDays = draft.ValidityDays
	if err := updated.Validate(); err != nil {
		return Proposal{}, err
	}

	changes := ComputeDiff(current, updated)
	if len(changes) == 0 {
		return current, nil
	}
	updated.Revision = current.Revision + 1

	revision := Revision{
		ProposalID: current.ID,
		Number:     updated.Revision,
		Summary:    summarizeDiff(changes),
		Changes:    changes,
		CreatedAt:  s.clock.Now(),
	}
	ok, err := s.repo.UpdateWithRevision(ctx, userId, updated, revision)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, ErrProposalNotFound
	}
	return updated, nil
}

func (s *ProposalServiceImpl) ChangeStatus(ctx context.Context, uid string, status Status) (Proposal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Proposal{}, err
	}
	if !status.IsValid() {
		return Proposal{}, fmt.Errorf("%w: unknown status %q", ErrProposalInvalid, status)
	}
	current, err := s.repo.GetByUid(ctx, userId, uid)
	if err != nil {
		return Proposal{}, err
	}
	if !current.Status.CanTransitionTo(status) {
		return Proposal{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, current.Status, status)
	}
	return s.applyStatus(ctx, userId, current, status)
}

// MarkExported stamps the PDF generation time. Exporting a draft also moves
// it to sent, since a document handed to the client is no longer a draft.
func (s *ProposalServiceImpl) MarkExported(ctx context.Context, uid string) (Proposal, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Proposal{}, err
	}
	current, err := s.repo.GetByUid(ctx, userId, uid)
	if err != nil {
		return Proposal{}, err
	}

	now := s.clock.Now()
	updated := current
	updated.PdfGeneratedAt = &now
	changes := map[string]FieldChange{
		"pdfGeneratedAt": {Old: formatStamp(current.PdfGeneratedAt), New: now.Format(time.RFC3339)},
	}
	if current.Status == StatusDraft {
		updated.Status = StatusSent
		if updated.SentAt == nil {
			updated.SentAt = &now
		}
		changes["status"] = FieldChange{Old: string(StatusDraft), New: string(StatusSent)}
	}

	updated.Revision = current.Revision + 1
	revision := Revision{
		ProposalID: current.ID,
		Number:     updated.Revision,
		Summary:    "Document exported",
		Changes:    changes,
		CreatedAt:  now,
	}
	ok, err := s.repo.UpdateStatusWithRevision(ctx, userId, updated, revision)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, ErrProposalNotFound
	}
	if updated.Status != current.Status {
		s.publishStatusChanged(ctx, current, updated)
	}
	return updated, nil
}

func (s *ProposalServiceImpl) Delete(ctx context.Context, uid string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return err
	}
	current, err := s.repo.GetByUid(ctx, userId, uid)
	if err != nil {
		return err
	}
	ok, err := s.repo.Delete(ctx, userId, current.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrProposalNotFound
	}
	return nil
}

func (s *ProposalServiceImpl) ListRevisions(ctx context.Context, uid string) ([]Revision, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, err
	}
	current, err := s.repo.GetByUid(ctx, userId, uid)
	if err != nil {
		return nil, err
	}
	return s.repo.ListRevisions(ctx, userId, current.ID)
}

func (s *ProposalServiceImpl) applyStatus(ctx context.Context, userId int, current Proposal, status Status) (Proposal, error) {
	now := s.clock.Now()
	updated := current
	updated.Status = status
	switch status {
	case StatusSent:
		if updated.SentAt == nil {
			updated.SentAt = &now
		}
	case StatusAccepted:
		updated.AcceptedAt = &now
	}
	updated.Revision = current.Revision + 1

	changes := map[string]FieldChange{
		"status": {Old: string(current.Status), New: string(status)},
	}
	revision := Revision{
		ProposalID: current.ID,
		Number:     updated.Revision,
		Summary:    fmt.Sprintf("Status changed from %s to %s", current.Status, status),
		Changes:    changes,
		CreatedAt:  now,
	}
	ok, err := s.repo.UpdateStatusWithRevision(ctx, userId, updated, revision)
	if err != nil {
		return Proposal{}, err
	}
	if !ok {
		return Proposal{}, ErrProposalNotFound
	}

	s.publishStatusChanged(ctx, current, updated)
	return updated, nil
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

func (s *ProposalServiceImpl) publishStatusChanged(ctx context.Context, old, updated Proposal) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.ProposalStatusChanged, event_bus.ProposalStatusChangedEvent{
		ProposalUid:    updated.Uid,
		ProposalNumber: updated.Number,
		Title:          updated.Title,
		OldStatus:      string(old.Status),
		NewStatus:      string(updated.Status),
		Revision:       updated.Revision,
	})
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("could not publish status change event: %v", err)
	}
}

func (s *ProposalServiceImpl) snapshotItems(ctx context.Context, inputs []ItemInput) ([]Item, error) {
	items := make([]Item, 0, len(inputs))
	for i, input := range inputs {
		service, err := s.catalog.Get(ctx, input.ServiceID)
		if err != nil {
			if errors.Is(err, catalog.ErrServiceNotFound) {
				return nil, fmt.Errorf("%w: service %d", ErrUnknownService, input.ServiceID)
			}
			return nil, err
		}
		unitPrice := service.UnitPrice()
		items = append(items, Item{
			ServiceID:   service.ID,
			Name:        service.Name,
			Description: service.Description,
			PriceType:   string(service.PriceType),
			UnitPrice:   unitPrice,
			Quantity:    input.Quantity,
			LineTotal:   unitPrice.Mul(input.Quantity),
			Position:    i,
		})
	}
	return items, nil
}
