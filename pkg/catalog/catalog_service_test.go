package catalog

import (
	"context"
	"testing"

	"github.com/eletroproposta/eletroproposta/internal/test_utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = test_utils.ContextWithTestUser()

var catalogRepoStub = NewStubCatalogRepo()

var service CatalogService

func setup(t *testing.T) func() {
	service = NewCatalogService(catalogRepoStub)
	return func() {
		t.Log("Teardown after test")
		catalogRepoStub.Cleanup()
	}
}

func fixedService(name string, price string) Service {
	return Service{
		Name:       name,
		PriceType:  PriceTypeFixed,
		FixedPrice: decimal.RequireFromString(price),
	}
}

func TestCatalogServiceImpl_Create(t *testing.T) {
	t.Run("should create a fixed price service", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, fixedService("Tomada nova", "120.00"))

		// then
		assert.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "Tomada nova", created.Name)
		assert.True(t, created.UnitPrice().Equal(decimal.RequireFromString("120.00")))
	})

	t.Run("should create an hourly service", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		created, err := service.Create(ctx, Service{
			Name:       "Manutenção elétrica",
			PriceType:  PriceTypeHourly,
			HourlyRate: decimal.RequireFromString("90.00"),
		})

		// then
		assert.NoError(t, err)
		assert.True(t, created.UnitPrice().Equal(decimal.RequireFromString("90.00")))
	})

	t.Run("should reject a service without a name", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, fixedService("", "120.00"))

		// then
		assert.ErrorIs(t, err, ErrServiceInvalid)
	})

	t.Run("should reject a fixed service without a positive price", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, fixedService("Quadro de luz", "0"))

		// then
		assert.ErrorIs(t, err, ErrServiceInvalid)
	})

	t.Run("should reject an unknown price type", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(ctx, Service{Name: "Algo", PriceType: "subscription"})

		// then
		assert.ErrorIs(t, err, ErrServiceInvalid)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		_, err := service.Create(context.Background(), fixedService("Tomada nova", "120.00"))

		// then
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}

func TestCatalogServiceImpl_GetAll(t *testing.T) {
	t.Run("should list created services", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		_, err := service.Create(ctx, fixedService("Tomada nova", "120.00"))
		require.NoError(t, err)
		_, err = service.Create(ctx, fixedService("Chuveiro", "180.00"))
		require.NoError(t, err)

		// when
		services, err := service.GetAll(ctx)

		// then
		assert.NoError(t, err)
		assert.Len(t, services, 2)
	})
}

func TestCatalogServiceImpl_Update(t *testing.T) {
	t.Run("should update an existing service", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, fixedService("Tomada nova", "120.00"))
		require.NoError(t, err)

		// when
		created.FixedPrice = decimal.RequireFromString("150.00")
		ok, err := service.Update(ctx, created)

		// then
		assert.NoError(t, err)
		assert.True(t, ok)
		updated, err := service.Get(ctx, created.ID)
		assert.NoError(t, err)
		assert.True(t, updated.FixedPrice.Equal(decimal.RequireFromString("150.00")))
	})

	t.Run("should report not found for a missing service", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// when
		ok, err := service.Update(ctx, fixedService("Fantasma", "10.00"))

		// then
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestCatalogServiceImpl_Delete(t *testing.T) {
	t.Run("should delete an existing service", func(t *testing.T) {
		teardown := setup(t)
		defer teardown()

		// given
		created, err := service.Create(ctx, fixedService("Tomada nova", "120.00"))
		require.NoError(t, err)

		// when
		ok, err := service.Delete(ctx, created.ID)

		// then
		assert.NoError(t, err)
		assert.True(t, ok)
		_, err = service.Get(ctx, created.ID)
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
