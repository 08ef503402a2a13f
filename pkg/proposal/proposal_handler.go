package proposal

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ClientDTO struct {
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

type ItemDTO struct {
	ServiceId   int             `json:"serviceId"`
	Name        string          `json:"name,omitempty"`
	Description string          `json:"description,omitempty"`
	PriceType   string          `json:"priceType,omitempty"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Quantity    decimal.Decimal `json:"quantity"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

type ProposalDTO struct {
	Uid            string          `json:"uid,omitempty"`
	Number         int             `json:"number,omitempty"`
	Revision       int             `json:"revision,omitempty"`
	Client         ClientDTO       `json:"client"`
	Title          string          `json:"title"`
	Description    string          `json:"description,omitempty"`
	Items          []ItemDTO       `json:"items"`
	Notes          string          `json:"notes,omitempty"`
	PaymentMethods []string        `json:"paymentMethods,omitempty"`
	ValidityDays   int             `json:"validityDays"`
	Status         Status          `json:"status,omitempty"`
	Total          decimal.Decimal `json:"total"`
	CreatedAt      *time.Time      `json:"createdAt,omitempty"`
	SentAt         *time.Time      `json:"sentAt,omitempty"`
	AcceptedAt     *time.Time      `json:"acceptedAt,omitempty"`
	PdfGeneratedAt *time.Time      `json:"pdfGeneratedAt,omitempty"`
}

type StatusChangeDTO struct {
	Status Status `json:"status"`
}

type FieldChangeDTO struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type RevisionDTO struct {
	Number    int                       `json:"number"`
	Summary   string                    `json:"summary"`
	Changes   map[string]FieldChangeDTO `json:"changes,omitempty"`
	CreatedAt time.Time                 `json:"createdAt"`
}

type Handler struct {
	proposalService ProposalService
}

func NewHandler(proposalService ProposalService) *Handler {
	return &Handler{proposalService}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new proposal")
	w.Header().Set("Content-Type", "application/json")

	var dto ProposalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	created, err := h.proposalService.Create(r.Context(), dtoToDraft(dto))
	if err != nil {
		writeProposalError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(proposalToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := Status(r.URL.Query().Get("status"))
	proposals, err := h.proposalService.GetAll(r.Context(), status)
	if err != nil {
		writeProposalError(w, err)
		return
	}

	dtos := make([]ProposalDTO, 0, len(proposals))
	for _, proposal := range proposals {
		dtos = append(dtos, proposalToDTO(proposal))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	proposal, err := h.proposalService.GetByUid(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeProposalError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(proposalToDTO(proposal)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto ProposalDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	updated, err := h.proposalService.Update(r.Context(), mux.Vars(r)["uid"], dtoToDraft(dto))
	if err != nil {
		writeProposalError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(proposalToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto StatusChangeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	updated, err := h.proposalService.ChangeStatus(r.Context(), mux.Vars(r)["uid"], dto.Status)
	if err != nil {
		writeProposalError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(proposalToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	err := h.proposalService.Delete(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeProposalError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListRevisions(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	revisions, err := h.proposalService.ListRevisions(r.Context(), mux.Vars(r)["uid"])
	if err != nil {
		writeProposalError(w, err)
		return
	}

	dtos := make([]RevisionDTO, 0, len(revisions))
	for _, revision := range revisions {
		dtos = append(dtos, revisionToDTO(revision))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func writeProposalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrProposalNotFound):
		rest.WriteError(w, http.StatusNotFound, "Proposal not found", "")
	case errors.Is(err, ErrProposalInvalid):
		rest.WriteError(w, http.StatusBadRequest, "Invalid proposal data", err.Error())
	case errors.Is(err, ErrUnknownService):
		rest.WriteError(w, http.StatusBadRequest, "Unknown catalog service", err.Error())
	case errors.Is(err, ErrInvalidTransition):
		rest.WriteError(w, http.StatusConflict, "Status transition not allowed", err.Error())
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func dtoToDraft(dto ProposalDTO) Draft {
	items := make([]ItemInput, 0, len(dto.Items))
	for _, item := range dto.Items {
		items = append(items, ItemInput{ServiceID: item.ServiceId, Quantity: item.Quantity})
	}
	return Draft{
		Client: Client{
			Name:    dto.Client.Name,
			Email:   dto.Client.Email,
			Phone:   dto.Client.Phone,
			Address: dto.Client.Address,
		},
		Title:          dto.Title,
		Description:    dto.Description,
		Items:          items,
		Notes:          dto.Notes,
		PaymentMethods: dto.PaymentMethods,
		ValidityDays:   dto.ValidityDays,
	}
}

func proposalToDTO(proposal Proposal) ProposalDTO {
	items := make([]ItemDTO, 0, len(proposal.Items))
	for _, item := range proposal.Items {
		items = append(items, ItemDTO{
			ServiceId:   item.ServiceID,
			Name:        item.Name,
			Description: item.Description,
			PriceType:   item.PriceType,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	createdAt := proposal.CreatedAt
	return ProposalDTO{
		Uid:      proposal.Uid,
		Number:   proposal.Number,
		Revision: proposal.Revision,
		Client: ClientDTO{
			Name:    proposal.Client.Name,
			Email:   proposal.Client.Email,
			Phone:   proposal.Client.Phone,
			Address: proposal.Client.Address,
		},
		Title:          proposal.Title,
		Description:    proposal.Description,
		Items:          items,
		Notes:          proposal.Notes,
		PaymentMethods: proposal.PaymentMethods,
		ValidityDays:   proposal.ValidityDays,
		Status:         proposal.Status,
		Total:          proposal.Total(),
		CreatedAt:      &createdAt,
		SentAt:         proposal.SentAt,
		AcceptedAt:     proposal.AcceptedAt,
		PdfGeneratedAt: proposal.PdfGeneratedAt,
	}
}

func revisionToDTO(revision Revision) RevisionDTO {
	changes := make(map[string]FieldChangeDTO, len(revision.Changes))
	for field, change := range revision.Changes {
		changes[field] = FieldChangeDTO{Old: change.Old, New: change.New}
	}
	return RevisionDTO{
		Number:    revision.Number,
		Summary:   revision.Summary,
		Changes:   changes,
		CreatedAt: revision.CreatedAt,
	}
}
