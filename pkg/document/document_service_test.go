package document

import (
	"strings"
	"testing"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/internal/test_utils"
	"github.com/eletroproposta/eletroproposta/internal/utils"
	"github.com/eletroproposta/eletroproposta/pkg/catalog"
	"github.com/eletroproposta/eletroproposta/pkg/proposal"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = test_utils.ContextWithTestUser()

var proposalRepoStub = proposal.NewStubProposalRepo()
var catalogRepoStub = catalog.NewStubCatalogRepo()

var proposals proposal.ProposalService
var service DocumentService
var bus *event_bus.EventBus
var clock = &utils.MockClock{FixedNow: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}

func setup(t *testing.T) func() {
	bus = event_bus.NewEventBus()
	catalogService := catalog.NewCatalogService(catalogRepoStub)
	proposals = proposal.NewProposalService(proposalRepoStub, catalogService, bus, clock, 15)
	service = NewDocumentService(proposals, pageCfg, bus, clock)

	return func() {
		t.Log("Teardown after test")
		proposalRepoStub.Cleanup()
		catalogRepoStub.Cleanup()
	}
}

func createProposal(t *testing.T, notes string) proposal.Proposal {
	t.Helper()
	created, err := catalog.NewCatalogService(catalogRepoStub).Create(ctx, catalog.Service{
		Name:       "Tomada nova",
		PriceType:  catalog.PriceTypeFixed,
		FixedPrice: decimal.RequireFromString("120.00"),
	})
	require.NoError(t, err)

	p, err := proposals.Create(ctx, proposal.Draft{
		Client: proposal.Client{Name: "João da Silva"},
		Title:  "Reforma elétrica",
		Items: []proposal.ItemInput{
			{ServiceID: created.ID, Quantity: decimal.NewFromInt(3)},
		},
		Notes:          notes,
		PaymentMethods: []string{"pix"},
	})
	require.NoError(t, err)
	return p
}

func TestDocumentServiceImpl_Generate(t *testing.T) {
	t.Run("should lay out the proposal and mark it exported", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created := createProposal(t, "Material incluso")

		// when
		doc, err := service.Generate(ctx, created.Uid)

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Uid, doc.ProposalUid)
		assert.Equal(t, created.Number, doc.ProposalNumber)
		require.NotEmpty(t, doc.Pages)

		exported, err := proposals.GetByUid(ctx, created.Uid)
		require.NoError(t, err)
		assert.Equal(t, proposal.StatusSent, exported.Status)
		assert.NotNil(t, exported.PdfGeneratedAt)
	})

	t.Run("should publish an export event with the page count", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created := createProposal(t, "")

		var published []event_bus.ProposalExportedEvent
		event_bus.SubscribeTyped[event_bus.ProposalExportedEvent](bus, event_bus.ProposalExported,
			func(e event_bus.EventT[event_bus.ProposalExportedEvent]) error {
				published = append(published, e.Data)
				return nil
			})

		doc, err := service.Generate(ctx, created.Uid)

		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, created.Uid, published[0].ProposalUid)
		assert.Equal(t, doc.PageCount(), published[0].Pages)
	})

	t.Run("long notes spill onto additional pages", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		notes := strings.TrimSpace(strings.Repeat("Ponto de tomada com aterramento dedicado.\n", 80))
		created := createProposal(t, notes)

		doc, err := service.Generate(ctx, created.Uid)

		require.NoError(t, err)
		assert.Greater(t, doc.PageCount(), 1)
	})

	t.Run("every block lands on exactly one page", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created := createProposal(t, "Material incluso")

		doc, err := service.Generate(ctx, created.Uid)
		require.NoError(t, err)

		var kinds []BlockKind
		for _, page := range doc.Pages {
			for _, block := range page.Blocks {
				kinds = append(kinds, block.Kind)
			}
		}
		assert.Equal(t, []BlockKind{
			BlockHeader, BlockClientInfo, BlockServiceTable,
			BlockNotes, BlockPaymentTerms, BlockFooter,
		}, kinds)
	})

	t.Run("should return not found for an unknown uid", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		_, err := service.Generate(ctx, "missing-uid")

		assert.ErrorIs(t, err, proposal.ErrProposalNotFound)
	})
}

func TestDocumentServiceImpl_Preview(t *testing.T) {
	t.Run("should not change proposal state", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		created := createProposal(t, "")

		doc, err := service.Preview(ctx, created.Uid)

		require.NoError(t, err)
		require.NotEmpty(t, doc.Pages)

		unchanged, err := proposals.GetByUid(ctx, created.Uid)
		require.NoError(t, err)
		assert.Equal(t, proposal.StatusDraft, unchanged.Status)
		assert.Nil(t, unchanged.PdfGeneratedAt)
	})
}
