package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/config"
	"github.com/eletroproposta/eletroproposta/internal/utils"
	"github.com/eletroproposta/eletroproposta/pkg/cashflow"
	"github.com/eletroproposta/eletroproposta/pkg/transaction"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type emptyTransactionSource struct{}

func (s emptyTransactionSource) GetAll(_ context.Context, _ transaction.Filter) ([]transaction.Transaction, error) {
	return nil, nil
}

func setupCashflowRouter() *mux.Router {
	clock := &utils.MockClock{FixedNow: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)}
	service := cashflow.NewCashflowService(emptyTransactionSource{}, clock)
	deps := &Dependencies{
		CashflowHandler: cashflow.NewHandler(service, cashflow.NewCsvSeriesRenderer()),
	}
	router := mux.NewRouter()
	RegisterRoutes(router, deps, config.Application{})
	return router
}

func TestCashflowRoutes_MissingFromParameter(t *testing.T) {
	router := setupCashflowRouter()

	// The route must still match so the handler can explain what is wrong
	req := httptest.NewRequest(http.MethodGet, "/api/cashflow/daily?to=2024-03-31", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err := json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid from date", errResponse.Error)
	assert.Contains(t, errResponse.Details, "YYYY-MM-DD")
}

func TestCashflowRoutes_MissingToParameter(t *testing.T) {
	router := setupCashflowRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/cashflow/summary?from=2024-03-01", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errResponse struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	err := json.NewDecoder(w.Body).Decode(&errResponse)
	assert.NoError(t, err)
	assert.Equal(t, "Invalid to date", errResponse.Error)
	assert.Contains(t, errResponse.Details, "YYYY-MM-DD")
}

func TestCashflowRoutes_ValidInterval(t *testing.T) {
	router := setupCashflowRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/cashflow/daily?from=2024-03-01&to=2024-03-03", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var dtos []cashflow.DailyBalanceDTO
	err := json.NewDecoder(w.Body).Decode(&dtos)
	assert.NoError(t, err)
	assert.Len(t, dtos, 3)
}
