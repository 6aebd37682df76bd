package ordering

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

func TestNormalize_MergesAndTrims(t *testing.T) {
	req, err := normalize(CreateOrderCommand{
		CustomerID: " C1 ",
		Lines: []domain.LineRequest{
			{ProductID: "P2", Quantity: 1},
			{ProductID: " P1", Quantity: 2},
			{ProductID: "P2", Quantity: 4},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "C1", req.customerID)
	assert.Equal(t, []domain.LineRequest{
		{ProductID: "P2", Quantity: 5},
		{ProductID: "P1", Quantity: 2},
	}, req.lines)
	assert.Equal(t, []string{"P2", "P1"}, req.productIDs())
}

func TestRequestMissing(t *testing.T) {
	req := request{lines: []domain.LineRequest{{ProductID: "P1"}, {ProductID: "P2"}, {ProductID: "P3"}}}
	missing := req.missing([]domain.Product{{ID: "P2"}})
	assert.Equal(t, []string{"P1", "P3"}, missing)
}

func TestNormalize_RejectsMergedQuantityOverflow(t *testing.T) {
	_, err := normalize(CreateOrderCommand{
		CustomerID: "C1",
		Lines: []domain.LineRequest{
			{ProductID: "P1", Quantity: math.MaxInt64 - 1},
			{ProductID: "P1", Quantity: 1},
		},
	})
	require.NoError(t, err)

	_, err = normalize(CreateOrderCommand{
		CustomerID: "C1",
		Lines: []domain.LineRequest{
			{ProductID: "P1", Quantity: math.MaxInt64},
			{ProductID: "P1", Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrQuantityTooLarge)
}
