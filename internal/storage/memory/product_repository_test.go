package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

func TestProductRepository_FindByIDsSkipsMissing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, repo.Create(ctx, domain.Product{ID: "p1", Name: "Keyboard", PriceMinor: 500, Quantity: 10}))
	require.NoError(t, repo.Create(ctx, domain.Product{ID: "p2", Name: "Mouse", PriceMinor: 200, Quantity: 1}))

	found, err := repo.FindByIDs(ctx, []string{"p2", "missing", "p1", "p2"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "p2", found[0].ID)
	assert.Equal(t, "p1", found[1].ID)
}

func TestProductRepository_CreateDuplicateName(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, repo.Create(ctx, domain.Product{ID: "p1", Name: "Keyboard"}))

	err := repo.Create(ctx, domain.Product{ID: "p2", Name: "keyboard"})
	require.ErrorIs(t, err, domain.ErrProductNameTaken)
}

func TestProductRepository_DecrementStock(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	require.NoError(t, repo.Create(ctx, domain.Product{ID: "p1", Name: "Keyboard", Quantity: 10}))
	require.NoError(t, repo.Create(ctx, domain.Product{ID: "p2", Name: "Mouse", Quantity: 1}))

	require.NoError(t, repo.DecrementStock(ctx, []domain.StockChange{{ProductID: "p1", Quantity: 3}}))
	p1, err := repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p1.Quantity)

	// Нехватка по одному товару не списывает ничего.
	err = repo.DecrementStock(ctx, []domain.StockChange{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 2},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	p1, err = repo.Get(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(7), p1.Quantity)

	err = repo.DecrementStock(ctx, []domain.StockChange{{ProductID: "missing", Quantity: 1}})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCustomerRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewCustomerRepository()
	require.NoError(t, repo.Create(ctx, domain.Customer{ID: "c1", Name: "Ann", Email: "ann@example.com"}))

	got, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	byEmail, err := repo.FindByEmail(ctx, "ANN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "c1", byEmail.ID)

	err = repo.Create(ctx, domain.Customer{ID: "c2", Name: "Other", Email: "ann@example.com"})
	require.ErrorIs(t, err, domain.ErrCustomerEmailTaken)

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrCustomerNotFound)
}
