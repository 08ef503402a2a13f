package document

import (
	"errors"
	"time"
)

type BlockKind string

const (
	BlockHeader       BlockKind = "header"
	BlockClientInfo   BlockKind = "clientInfo"
	BlockServiceTable BlockKind = "serviceTable"
	BlockNotes        BlockKind = "notes"
	BlockPaymentTerms BlockKind = "paymentTerms"
	BlockFooter       BlockKind = "footer"
)

var ErrUnknownBlockKind = errors.New("unknown block kind")

// Block is a printable unit of the proposal document. Blocks are never split
// across pages; the paginator moves a block that does not fit to the next page.
type Block struct {
	Kind   BlockKind
	Lines  []string
	Height float64
}

// Page is an ordered run of blocks that fit the usable page height together.
type Page struct {
	Number int
	Blocks []Block
}

// Document is the paginated layout of a proposal, ready for rendering.
type Document struct {
	ProposalUid    string
	ProposalNumber int
	Title          string
	Pages          []Page
	GeneratedAt    time.Time
}

func (d Document) PageCount() int {
	return len(d.Pages)
}
