package domain

import "errors"

var (
	// Ошибка отсутствующего идентификатора клиента.
	ErrCustomerIDRequired = errors.New("customer_id is required")
	// Ошибка отсутствия хотя бы одного товара в заказе.
	ErrProductsRequired = errors.New("order must contain at least one product")
	// Ошибка пустого идентификатора товара в позиции запроса.
	ErrProductIDRequired = errors.New("product id is required")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrQuantityInvalid = errors.New("product quantity must be greater than zero")
	// Ошибка суммарного количества товара, не помещающегося в int64.
	ErrQuantityTooLarge = errors.New("product quantity is too large")
	// Ошибка стоимости заказа, не помещающейся в int64.
	ErrAmountOverflow = errors.New("order amount is too large")

	// ErrCustomerNotFound возвращается, если клиент заказа не найден.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrInvalidProducts возвращается, если часть товаров заказа не существует.
	ErrInvalidProducts = errors.New("order has invalid products")
	// ErrInsufficientStock возвращается, если остатка хотя бы одного товара не хватает.
	ErrInsufficientStock = errors.New("order has products with insufficient quantity")
	// ErrOrderLineMismatch сигнализирует о рассинхроне найденных товаров и строк запроса.
	ErrOrderLineMismatch = errors.New("resolved product has no matching order line")

	// Ошибки инвариантов заказа.
	ErrAmountNegative      = errors.New("amount_minor must be non-negative")
	ErrLineQtyInvalid      = errors.New("order line quantity must be greater than zero")
	ErrLinePriceInvalid    = errors.New("order line price must be non-negative")
	ErrAmountMismatch      = errors.New("order amount does not match lines sum")
	ErrDuplicateOrderLine  = errors.New("order contains duplicate product lines")
	ErrOrderLineProductReq = errors.New("order line product_id is required")

	// Ошибки регистрации клиентов и товаров.
	ErrCustomerNameRequired   = errors.New("customer name is required")
	ErrCustomerEmailInvalid   = errors.New("customer email is invalid")
	ErrCustomerEmailTaken     = errors.New("customer email is already in use")
	ErrProductNameRequired    = errors.New("product name is required")
	ErrProductPriceInvalid    = errors.New("product price must be non-negative")
	ErrProductQuantityInvalid = errors.New("product quantity must be non-negative")
	ErrProductNameTaken       = errors.New("product with this name already exists")

	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyExists возвращается при повторной вставке заказа с тем же ID.
	ErrOrderAlreadyExists = errors.New("order already exists")

	// ErrOutboxPublish — ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
	// ErrOutboxMessageNotFound возвращается при отметке несуществующего сообщения.
	ErrOutboxMessageNotFound = errors.New("outbox message not found")
)

var validationErrors = []error{
	ErrCustomerIDRequired,
	ErrProductsRequired,
	ErrProductIDRequired,
	ErrQuantityInvalid,
	ErrQuantityTooLarge,
	ErrAmountOverflow,
	ErrCustomerNotFound,
	ErrInvalidProducts,
	ErrInsufficientStock,
	ErrCustomerNameRequired,
	ErrCustomerEmailInvalid,
	ErrProductNameRequired,
	ErrProductPriceInvalid,
	ErrProductQuantityInvalid,
}

// IsValidationError сообщает, что ошибка вызвана входными данными запроса,
// а не инфраструктурой, и её текст можно вернуть клиенту.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsConflict проверяет, является ли ошибка конфликтом уникальности.
func IsConflict(err error) bool {
	return errors.Is(err, ErrCustomerEmailTaken) ||
		errors.Is(err, ErrProductNameTaken) ||
		errors.Is(err, ErrOrderAlreadyExists)
}

// IsNotFound проверяет, что запрошенная по идентификатору сущность отсутствует.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrProductNotFound)
}
