package ordering

import (
	"math"
	"strings"

	"github.com/vladislavdragonenkov/orders/internal/domain"
)

// request — нормализованная команда: строки без дублей товаров.
type request struct {
	customerID string
	lines      []domain.LineRequest
}

// normalize проверяет поля команды и объединяет повторяющиеся товары,
// суммируя количество и сохраняя порядок первого упоминания.
func normalize(cmd CreateOrderCommand) (request, error) {
	customerID := strings.TrimSpace(cmd.CustomerID)
	if customerID == "" {
		return request{}, domain.ErrCustomerIDRequired
	}
	if len(cmd.Lines) == 0 {
		return request{}, domain.ErrProductsRequired
	}

	index := make(map[string]int, len(cmd.Lines))
	lines := make([]domain.LineRequest, 0, len(cmd.Lines))
	for _, line := range cmd.Lines {
		productID := strings.TrimSpace(line.ProductID)
		if productID == "" {
			return request{}, domain.ErrProductIDRequired
		}
		if line.Quantity <= 0 {
			return request{}, domain.ErrQuantityInvalid
		}

		if i, ok := index[productID]; ok {
			if lines[i].Quantity > math.MaxInt64-line.Quantity {
				return request{}, domain.ErrQuantityTooLarge
			}
			lines[i].Quantity += line.Quantity
			continue
		}
		index[productID] = len(lines)
		lines = append(lines, domain.LineRequest{ProductID: productID, Quantity: line.Quantity})
	}

	return request{customerID: customerID, lines: lines}, nil
}

func (r request) productIDs() []string {
	ids := make([]string, len(r.lines))
	for i, line := range r.lines {
		ids[i] = line.ProductID
	}
	return ids
}

func (r request) missing(found []domain.Product) []string {
	known := make(map[string]struct{}, len(found))
	for _, p := range found {
		known[p.ID] = struct{}{}
	}
	var missing []string
	for _, line := range r.lines {
		if _, ok := known[line.ProductID]; !ok {
			missing = append(missing, line.ProductID)
		}
	}
	return missing
}
