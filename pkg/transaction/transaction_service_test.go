package transaction

import (
	"context"
	"testing"
	"time"

	"github.com/eletroproposta/eletroproposta/internal/event_bus"
	"github.com/eletroproposta/eletroproposta/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = test_utils.ContextWithTestUser()

type stubCategoryChecker struct {
	known map[string]bool
}

func (s *stubCategoryChecker) Exists(ctx context.Context, name string, categoryType string) (bool, error) {
	return s.known[name+"/"+categoryType], nil
}

var transactionRepoStub = NewStubTransactionRepo()
var checkerStub = &stubCategoryChecker{}

var service TransactionService
var bus *event_bus.EventBus

func setup(t *testing.T) func() {
	checkerStub.known = map[string]bool{
		"Material/expense": true,
		"Serviços/income":  true,
	}
	bus = event_bus.NewEventBus()
	service = NewTransactionService(transactionRepoStub, checkerStub, bus)
	return func() {
		t.Log("Teardown after test")
		transactionRepoStub.Cleanup()
	}
}

func expense(amount string, day int) Transaction {
	return Transaction{
		Type:     TypeExpense,
		Amount:   decimal.RequireFromString(amount),
		Date:     time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Category: "Material",
	}
}

func income(amount string, day int) Transaction {
	return Transaction{
		Type:     TypeIncome,
		Amount:   decimal.RequireFromString(amount),
		Date:     time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
		Category: "Serviços",
	}
}

func TestTransactionServiceImpl_Create(t *testing.T) {
	t.Run("should record a transaction and publish an event", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		var published []event_bus.TransactionRecordedEvent
		event_bus.SubscribeTyped[event_bus.TransactionRecordedEvent](bus, event_bus.TransactionRecorded,
			func(e event_bus.EventT[event_bus.TransactionRecordedEvent]) error {
				published = append(published, e.Data)
				return nil
			})

		// when
		created, err := service.Create(ctx, income("350.00", 5))

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		require.Len(t, published, 1)
		assert.Equal(t, "income", published[0].Type)
		assert.Equal(t, "Serviços", published[0].Category)
	})

	t.Run("should reject an unknown category", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		tx := expense("100.00", 5)
		tx.Category = "Combustível"

		// when
		_, err := service.Create(ctx, tx)

		// then
		assert.ErrorIs(t, err, ErrUnknownCategory)
	})

	t.Run("should reject a non-positive amount", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, expense("-10.00", 5))

		// then
		assert.ErrorIs(t, err, ErrTransactionInvalid)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), expense("10.00", 5))

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestTransactionServiceImpl_GetAll(t *testing.T) {
	t.Run("should filter by date range and type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, income("100.00", 2))
		require.NoError(t, err)
		_, err = service.Create(ctx, expense("40.00", 10))
		require.NoError(t, err)
		_, err = service.Create(ctx, income("200.00", 20))
		require.NoError(t, err)

		// when
		inRange, err := service.GetAll(ctx, Filter{
			From: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		})

		// then
		assert.NoError(t, err)
		assert.Len(t, inRange, 2)

		// when
		onlyIncome, err := service.GetAll(ctx, Filter{Type: TypeIncome})

		// then
		assert.NoError(t, err)
		assert.Len(t, onlyIncome, 2)
	})
}

func TestTransaction_SignedAmount(t *testing.T) {
	assert.True(t, income("100.00", 1).SignedAmount().Equal(decimal.RequireFromString("100.00")))
	assert.True(t, expense("40.00", 1).SignedAmount().Equal(decimal.RequireFromString("-40.00")))
}
