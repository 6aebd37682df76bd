package catalog_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/catalog"
	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/service/customer"
	"github.com/vladislavdragonenkov/orders/internal/service/product"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
)

const sample = `
customers:
  - name: Ann
    email: ann@example.com
  - name: Bob
    email: bob@example.com
products:
  - name: Keyboard
    price: 500
    quantity: 10
  - name: Mouse
    price: 250
    quantity: 2
`

func TestParse(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, cat.Customers, 2)
	require.Len(t, cat.Products, 2)
	assert.Equal(t, int64(500), cat.Products[0].Price)
}

func TestParse_RejectsInvalidEntries(t *testing.T) {
	_, err := catalog.Parse(strings.NewReader(`
products:
  - name: ""
    price: -1
    quantity: 1
`))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProductNameRequired)
	assert.ErrorIs(t, err, domain.ErrProductPriceInvalid)
}

func TestParse_RejectsUnknownFields(t *testing.T) {
	_, err := catalog.Parse(strings.NewReader("products:\n  - name: X\n    colour: red\n"))
	assert.Error(t, err)
}

func TestParse_EmptyInput(t *testing.T) {
	cat, err := catalog.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, cat.Customers)
}

func TestLoadAndApplyTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cat, err := catalog.Load(path)
	require.NoError(t, err)

	store := memory.NewStore()
	customers := customer.NewService(store.Customers(), nil)
	products := product.NewService(store.Products(), nil)
	ctx := context.Background()

	report, err := catalog.Apply(ctx, cat, customers, products, nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.Report{CustomersCreated: 2, ProductsCreated: 2}, report)

	report, err = catalog.Apply(ctx, cat, customers, products, nil)
	require.NoError(t, err)
	assert.Equal(t, catalog.Report{Skipped: 4}, report)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
