package domain

import "time"

// Product хранит карточку товара вместе с текущим складским остатком.
type Product struct {
	ID   string
	Name string
	// PriceMinor — цена за единицу в минимальных денежных единицах.
	PriceMinor int64
	// Quantity — доступный остаток, никогда не уходит в минус.
	Quantity  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockChange описывает списание остатка по одному товару.
type StockChange struct {
	ProductID string
	Quantity  int64
}
