package domain

import (
	"math"
	"time"
)

// LineRequest — строка входящего запроса на заказ, до проверки товара.
type LineRequest struct {
	ProductID string
	Quantity  int64
}

// OrderLine представляет одну позицию оформленного заказа.
type OrderLine struct {
	ID        string
	ProductID string
	Quantity  int64
	// PriceMinor фиксируется из карточки товара в момент проверки заказа.
	PriceMinor int64
	CreatedAt  time.Time
}

// Order агрегирует заказ клиента и его позиции. После создания не меняется.
type Order struct {
	ID          string
	CustomerID  string
	AmountMinor int64
	Lines       []OrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subtotal возвращает стоимость позиции или ErrAmountOverflow, если она
// не помещается в int64.
func (l OrderLine) Subtotal() (int64, error) {
	if l.Quantity > 0 && l.PriceMinor > math.MaxInt64/l.Quantity {
		return 0, ErrAmountOverflow
	}
	return l.Quantity * l.PriceMinor, nil
}

// CalculateAmount суммирует стоимость позиций заказа.
func (o *Order) CalculateAmount() (int64, error) {
	var total int64
	for _, line := range o.Lines {
		subtotal, err := line.Subtotal()
		if err != nil {
			return 0, err
		}
		if subtotal > 0 && total > math.MaxInt64-subtotal {
			return 0, ErrAmountOverflow
		}
		total += subtotal
	}
	return total, nil
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if o.CustomerID == "" {
		errs = append(errs, ErrCustomerIDRequired)
	}
	if len(o.Lines) == 0 {
		errs = append(errs, ErrProductsRequired)
	}
	if o.AmountMinor < 0 {
		errs = append(errs, ErrAmountNegative)
	}

	seen := make(map[string]struct{}, len(o.Lines))
	for _, line := range o.Lines {
		if line.ProductID == "" {
			errs = append(errs, ErrOrderLineProductReq)
		}
		if _, dup := seen[line.ProductID]; dup {
			errs = append(errs, ErrDuplicateOrderLine)
		}
		seen[line.ProductID] = struct{}{}

		if line.Quantity <= 0 {
			errs = append(errs, ErrLineQtyInvalid)
		}
		if line.PriceMinor < 0 {
			errs = append(errs, ErrLinePriceInvalid)
		}
	}
	if amount, err := o.CalculateAmount(); err != nil {
		errs = append(errs, err)
	} else if amount != o.AmountMinor {
		errs = append(errs, ErrAmountMismatch)
	}

	return errs
}
