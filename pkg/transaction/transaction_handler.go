package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

type TransactionDTO struct {
	ID          int             `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
}

type Handler struct {
	transactionService TransactionService
}

func NewHandler(transactionService TransactionService) *Handler {
	return &Handler{transactionService}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Recording new transaction")
	w.Header().Set("Content-Type", "application/json")

	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	transaction, err := dtoToTransaction(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be YYYY-MM-DD")
		return
	}

	created, err := h.transactionService.Create(r.Context(), transaction)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(transactionToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	filter, err := filterFromQuery(r)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "from and to must be YYYY-MM-DD")
		return
	}

	transactions, err := h.transactionService.GetAll(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]TransactionDTO, 0, len(transactions))
	for _, transaction := range transactions {
		dtos = append(dtos, transactionToDTO(transaction))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	transactionId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto TransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if dto.ID == 0 || dto.ID != int(transactionId) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction id in request body", "")
		return
	}

	transaction, err := dtoToTransaction(dto)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "date must be YYYY-MM-DD")
		return
	}

	ok, err := h.transactionService.Update(r.Context(), transaction)
	if err != nil && !errors.Is(err, ErrTransactionNotFound) {
		writeServiceError(w, err)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Transaction not found", "")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	transactionId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.transactionService.Delete(r.Context(), int(transactionId))
	if err != nil && !errors.Is(err, ErrTransactionNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Transaction not found", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTransactionInvalid):
		rest.WriteError(w, http.StatusBadRequest, "Invalid transaction data", err.Error())
	case errors.Is(err, ErrUnknownCategory):
		rest.WriteError(w, http.StatusBadRequest, "Unknown category",
			"Create the category first, then record the transaction.")
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := time.Parse(dateLayout, from)
		if err != nil {
			return Filter{}, err
		}
		filter.From = parsed
	}
	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := time.Parse(dateLayout, to)
		if err != nil {
			return Filter{}, err
		}
		filter.To = parsed
	}
	filter.Type = TransactionType(r.URL.Query().Get("type"))
	filter.Category = r.URL.Query().Get("category")
	return filter, nil
}

func transactionToDTO(transaction Transaction) TransactionDTO {
	return TransactionDTO{
		ID:          transaction.ID,
		Type:        transaction.Type,
		Amount:      transaction.Amount,
		Date:        transaction.Date.Format(dateLayout),
		Category:    transaction.Category,
		Description: transaction.Description,
	}
}

func dtoToTransaction(dto TransactionDTO) (Transaction, error) {
	date, err := time.Parse(dateLayout, dto.Date)
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{
		ID:          dto.ID,
		Type:        dto.Type,
		Amount:      dto.Amount,
		Date:        date,
		Category:    dto.Category,
		Description: dto.Description,
	}, nil
}
