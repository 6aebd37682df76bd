package domain

import "time"

// Customer описывает покупателя, от имени которого оформляются заказы.
type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
