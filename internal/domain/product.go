package domain

import "time"

type Product struct {
	ID        string
	WarungID  string
	Name      string
	BuyPrice  float64
	SellPrice float64
	Stock     int
	Category  string
	Emoji     *string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Margin() float64 {
	return p.SellPrice - p.BuyPrice
}

func (p Product) InStock() bool {
	return p.Stock > 0
}
