package document

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/eletroproposta/eletroproposta/pkg/proposal"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type BlockDTO struct {
	Kind   BlockKind `json:"kind"`
	Lines  []string  `json:"lines"`
	Height float64   `json:"height"`
}

type PageDTO struct {
	Number int        `json:"number"`
	Blocks []BlockDTO `json:"blocks"`
}

type DocumentDTO struct {
	ProposalUid    string    `json:"proposalUid"`
	ProposalNumber int       `json:"proposalNumber"`
	Title          string    `json:"title"`
	Pages          []PageDTO `json:"pages"`
	PageCount      int       `json:"pageCount"`
	GeneratedAt    time.Time `json:"generatedAt"`
}

type Handler struct {
	documentService DocumentService
}

func NewHandler(documentService DocumentService) *Handler {
	return &Handler{documentService}
}

// Generate lays out the document and marks the proposal as exported.
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating proposal document")
	w.Header().Set("Content-Type", "application/json")

	doc, err := h.documentService.Generate(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(documentToDTO(doc)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// Preview lays out the document without changing proposal state.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	doc, err := h.documentService.Preview(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeDocumentError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(documentToDTO(doc)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeDocumentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, proposal.ErrProposalNotFound):
		rest.WriteError(w, http.StatusNotFound, "Proposal not found", "")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func documentToDTO(doc Document) DocumentDTO {
	pages := make([]PageDTO, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		blocks := make([]BlockDTO, 0, len(page.Blocks))
		for _, block := range page.Blocks {
			blocks = append(blocks, BlockDTO{Kind: block.Kind, Lines: block.Lines, Height: block.Height})
		}
		pages = append(pages, PageDTO{Number: page.Number, Blocks: blocks})
	}
	return DocumentDTO{
		ProposalUid:    doc.ProposalUid,
		ProposalNumber: doc.ProposalNumber,
		Title:          doc.Title,
		Pages:          pages,
		PageCount:      doc.PageCount(),
		GeneratedAt:    doc.GeneratedAt,
	}
}
