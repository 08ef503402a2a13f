package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/eletroproposta/eletroproposta/internal/config"
	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/internal/utils"
	"github.com/eletroproposta/eletroproposta/pkg/proposal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "02/01/2006"

type DocumentService interface {
	// Generate lays out the proposal as a paginated document and marks the
	// proposal as exported.
	Generate(ctx context.Context, uid string) (Document, error)
	// Preview lays out the document without touching proposal state.
	Preview(ctx context.Context, uid string) (Document, error)
}

type DocumentServiceImpl struct {
	proposals proposal.ProposalService
	measurer  *Measurer
	cfg       config.Document
	bus       *event_bus.EventBus
	clock     utils.Clock
}

func NewDocumentService(proposals proposal.ProposalService, cfg config.Document, bus *event_bus.EventBus, clock utils.Clock) *DocumentServiceImpl {
	return &DocumentServiceImpl{
		proposals: proposals,
		measurer:  NewMeasurer(cfg),
		cfg:       cfg,
		bus:       bus,
		clock:     clock,
	}
}

func (s *DocumentServiceImpl) Generate(ctx context.Context, uid string) (Document, error) {
	exported, err := s.proposals.MarkExported(ctx, uid)
	if err != nil {
		return Document{}, err
	}
	doc, err := s.layout(exported)
	if err != nil {
		return Document{}, err
	}
	s.publishExported(ctx, exported, doc)
	return doc, nil
}

func (s *DocumentServiceImpl) Preview(ctx context.Context, uid string) (Document, error) {
	current, err := s.proposals.GetByUid(ctx, uid)
	if err != nil {
		return Document{}, err
	}
	return s.layout(current)
}

func (s *DocumentServiceImpl) layout(p proposal.Proposal) (Document, error) {
	blocks, err := s.measureAll(composeBlocks(p, s.clock))
	if err != nil {
		return Document{}, err
	}
	pages := Paginate(blocks, s.measurer.UsableHeight(), s.cfg.BlockMargin)
	return Document{
		ProposalUid:    p.Uid,
		ProposalNumber: p.Number,
		Title:          p.Title,
		Pages:          pages,
		GeneratedAt:    s.clock.Now(),
	}, nil
}

func (s *DocumentServiceImpl) measureAll(blocks []Block) ([]Block, error) {
	measured := make([]Block, 0, len(blocks))
	for _, block := range blocks {
		m, err := s.measurer.Measure(block)
		if err != nil {
			return nil, err
		}
		measured = append(measured, m)
	}
	return measured, nil
}

func (s *DocumentServiceImpl) publishExported(ctx context.Context, p proposal.Proposal, doc Document) {
	if s.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.ProposalExported, event_bus.ProposalExportedEvent{
		ProposalUid:    p.Uid,
		ProposalNumber: p.Number,
		Title:          p.Title,
		Pages:          doc.PageCount(),
	})
	if err := s.bus.Publish(event); err != nil {
		log.Errorf("could not publish export event: %v", err)
	}
}

// composeBlocks builds the printable blocks for a proposal in reading order.
// Optional sections (notes, payment terms) are skipped when empty.
func composeBlocks(p proposal.Proposal, clock utils.Clock) []Block {
	blocks := []Block{
		{
			Kind: BlockHeader,
			Lines: []string{
				fmt.Sprintf("Proposta Nº %d (rev. %d)", p.Number, p.Revision),
				p.Title,
				"Data: " + p.CreatedAt.Format(dateLayout),
			},
		},
		{Kind: BlockClientInfo, Lines: clientLines(p.Client)},
		{Kind: BlockServiceTable, Lines: serviceTableLines(p)},
	}

	if p.Notes != "" {
		blocks = append(blocks, Block{
			Kind:  BlockNotes,
			Lines: append([]string{"Observações:"}, strings.Split(p.Notes, "\n")...),
		})
	}
	if len(p.PaymentMethods) > 0 {
		blocks = append(blocks, Block{
			Kind: BlockPaymentTerms,
			Lines: []string{
				"Formas de pagamento: " + strings.Join(p.PaymentMethods, ", "),
			},
		})
	}

	blocks = append(blocks, Block{
		Kind: BlockFooter,
		Lines: []string{
			fmt.Sprintf("Proposta válida por %d dias.", p.ValidityDays),
			"Gerado em " + clock.Now().Format(dateLayout),
		},
	})
	return blocks
}

func clientLines(c proposal.Client) []string {
	lines := []string{"Cliente: " + c.Name}
	if c.Phone != "" {
		lines = append(lines, "Telefone: "+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "E-mail: "+c.Email)
	}
	if c.Address != "" {
		lines = append(lines, "Endereço: "+c.Address)
	}
	return lines
}

func serviceTableLines(p proposal.Proposal) []string {
	lines := []string{"Serviço | Qtd | Unitário | Subtotal"}
	for _, item := range p.Items {
		unit := item.UnitPrice.StringFixed(2)
		if item.PriceType == "hourly" {
			unit += "/h"
		}
		lines = append(lines, fmt.Sprintf("%s | %s | R$ %s | R$ %s",
			item.Name, item.Quantity.String(), unit, item.LineTotal.StringFixed(2)))
	}
	lines = append(lines, "Total: R$ "+p.Total().StringFixed(2))
	return lines
}
