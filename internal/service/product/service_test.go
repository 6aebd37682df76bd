package product_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/product"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()
	svc := product.NewService(memory.NewProductRepository(), nil)

	created, err := svc.CreateProduct(ctx, "Keyboard", 500, 10)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, int64(500), created.PriceMinor)
	assert.Equal(t, int64(10), created.Quantity)

	got, err := svc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreateProduct_Validation(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		price    int64
		quantity int64
		want     error
	}{
		{name: "empty name", title: " ", price: 1, quantity: 1, want: domain.ErrProductNameRequired},
		{name: "negative price", title: "Mouse", price: -1, quantity: 1, want: domain.ErrProductPriceInvalid},
		{name: "negative quantity", title: "Mouse", price: 1, quantity: -1, want: domain.ErrProductQuantityInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := product.NewService(memory.NewProductRepository(), nil)
			_, err := svc.CreateProduct(context.Background(), tt.title, tt.price, tt.quantity)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCreateProduct_NameTaken(t *testing.T) {
	ctx := context.Background()
	svc := product.NewService(memory.NewProductRepository(), nil)

	_, err := svc.CreateProduct(ctx, "Keyboard", 500, 10)
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, "Keyboard", 700, 1)
	require.ErrorIs(t, err, domain.ErrProductNameTaken)
}
