package cashflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type DailyBalanceDTO struct {
	Date         string                       `json:"date"`
	Balance      decimal.Decimal              `json:"balance"`
	Transactions []transaction.TransactionDTO `json:"transactions"`
	Mark         DayMark                      `json:"mark"`
}

type SummaryDTO struct {
	From              string              `json:"from"`
	To                string              `json:"to"`
	TotalIncome       decimal.Decimal     `json:"totalIncome"`
	TotalExpense      decimal.Decimal     `json:"totalExpense"`
	Net               decimal.Decimal     `json:"net"`
	ExpenseByCategory []CategoryAmountDTO `json:"expenseByCategory"`
}

type CategoryAmountDTO struct {
	Category         string          `json:"category"`
	Amount           decimal.Decimal `json:"amount"`
	PercentOfExpense decimal.Decimal `json:"percentOfExpense"`
}

type Handler struct {
	cashflowService CashflowService
	csvRenderer     SeriesRenderer
}

func NewHandler(cashflowService CashflowService, csvRenderer SeriesRenderer) *Handler {
	return &Handler{cashflowService, csvRenderer}
}

func (h *Handler) GetDailyBalances(w http.ResponseWriter, r *http.Request) {
	from, to, ok := parseInterval(w, r)
	if !ok {
		return
	}

	series, err := h.cashflowService.GetDailyBalances(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidInterval) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid interval", "to must not be before from")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.RenderSeries(series)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	dtos := make([]DailyBalanceDTO, 0, len(series))
	for _, day := range series {
		dtos = append(dtos, dailyBalanceToDTO(day))
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	from, to, ok := parseInterval(w, r)
	if !ok {
		return
	}

	summary, err := h.cashflowService.GetSummary(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, ErrInvalidInterval) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid interval", "to must not be before from")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	categories := make([]CategoryAmountDTO, 0, len(summary.ExpenseByCategory))
	for _, category := range summary.ExpenseByCategory {
		categories = append(categories, CategoryAmountDTO{
			Category:         category.Category,
			Amount:           category.Amount,
			PercentOfExpense: category.PercentOfExpense,
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(SummaryDTO{
		From:              summary.From.Format(dateLayout),
		To:                summary.To.Format(dateLayout),
		TotalIncome:       summary.TotalIncome,
		TotalExpense:      summary.TotalExpense,
		Net:               summary.Net,
		ExpenseByCategory: categories,
	}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// parseInterval reads and validates the from/to query parameters. Malformed
// dates are rejected here so the projector never sees them.
func parseInterval(w http.ResponseWriter, r *http.Request) (time.Time, time.Time, bool) {
	from, err := time.Parse(dateLayout, r.URL.Query().Get("from"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid from date", "from must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(dateLayout, r.URL.Query().Get("to"))
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid to date", "to must be YYYY-MM-DD")
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func dailyBalanceToDTO(day DailyBalance) DailyBalanceDTO {
	transactions := make([]transaction.TransactionDTO, 0, len(day.Transactions))
	for _, tx := range day.Transactions {
		transactions = append(transactions, transaction.TransactionDTO{
			ID:          tx.ID,
			Type:        tx.Type,
			Amount:      tx.Amount,
			Date:        tx.Date.Format(dateLayout),
			Category:    tx.Category,
			Description: tx.Description,
		})
	}
	return DailyBalanceDTO{
		Date:         day.Date.Format(dateLayout),
		Balance:      day.Balance,
		Transactions: transactions,
		Mark:         day.Mark,
	}
}
