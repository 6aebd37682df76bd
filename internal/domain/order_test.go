package domain_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// helper для создания базового заказа с двумя позициями.
func makeOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID:          "order-1",
		CustomerID:  "customer-1",
		AmountMinor: 1700,
		Lines: []domain.OrderLine{
			{ID: "line-1", ProductID: "product-1", Quantity: 3, PriceMinor: 500, CreatedAt: now},
			{ID: "line-2", ProductID: "product-2", Quantity: 1, PriceMinor: 200, CreatedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderValidateInvariants_Ok(t *testing.T) {
	order := makeOrder()
	if errs := order.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no validation errors, got %v", errs)
	}
}

func TestOrderCalculateAmount(t *testing.T) {
	order := makeOrder()
	got, err := order.CalculateAmount()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1700 {
		t.Fatalf("expected amount 1700, got %d", got)
	}
}

func TestOrderCalculateAmount_Overflow(t *testing.T) {
	cases := []struct {
		name  string
		lines []domain.OrderLine
	}{
		{
			name:  "line subtotal",
			lines: []domain.OrderLine{{ProductID: "product-1", Quantity: math.MaxInt64 / 2, PriceMinor: 4}},
		},
		{
			name: "lines sum",
			lines: []domain.OrderLine{
				{ProductID: "product-1", Quantity: 1, PriceMinor: math.MaxInt64},
				{ProductID: "product-2", Quantity: 1, PriceMinor: 1},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := domain.Order{CustomerID: "customer-1", Lines: tc.lines}
			if _, err := order.CalculateAmount(); !errors.Is(err, domain.ErrAmountOverflow) {
				t.Fatalf("expected ErrAmountOverflow, got %v", err)
			}
			if !domain.IsValidationError(domain.ErrAmountOverflow) {
				t.Fatalf("overflow must be reported as a validation error")
			}
			if !errors.Is(errors.Join(order.ValidateInvariants()...), domain.ErrAmountOverflow) {
				t.Fatalf("invariants must report the overflow")
			}
		})
	}

	exact := domain.Order{Lines: []domain.OrderLine{{ProductID: "product-1", Quantity: 1, PriceMinor: math.MaxInt64}}}
	if got, err := exact.CalculateAmount(); err != nil || got != math.MaxInt64 {
		t.Fatalf("expected MaxInt64 without error, got %d, %v", got, err)
	}
}

func TestOrderValidateInvariants_Errors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(o *domain.Order)
		want error
	}{
		{
			name: "no customer",
			mut:  func(o *domain.Order) { o.CustomerID = "" },
			want: domain.ErrCustomerIDRequired,
		},
		{
			name: "negative amount",
			mut:  func(o *domain.Order) { o.AmountMinor = -1 },
			want: domain.ErrAmountNegative,
		},
		{
			name: "no lines",
			mut:  func(o *domain.Order) { o.Lines = nil; o.AmountMinor = 0 },
			want: domain.ErrProductsRequired,
		},
		{
			name: "qty invalid",
			mut:  func(o *domain.Order) { o.Lines[0].Quantity = 0; o.AmountMinor = 200 },
			want: domain.ErrLineQtyInvalid,
		},
		{
			name: "price invalid",
			mut:  func(o *domain.Order) { o.Lines[1].PriceMinor = -5 },
			want: domain.ErrLinePriceInvalid,
		},
		{
			name: "amount mismatch",
			mut:  func(o *domain.Order) { o.AmountMinor = 999 },
			want: domain.ErrAmountMismatch,
		},
		{
			name: "duplicate product",
			mut:  func(o *domain.Order) { o.Lines[1].ProductID = "product-1" },
			want: domain.ErrDuplicateOrderLine,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := makeOrder()
			tc.mut(&order)

			errs := order.ValidateInvariants()
			if len(errs) == 0 {
				t.Fatalf("expected validation errors for case %s", tc.name)
			}
			if !errors.Is(errors.Join(errs...), tc.want) {
				t.Fatalf("expected %v among %v", tc.want, errs)
			}
		})
	}
}
