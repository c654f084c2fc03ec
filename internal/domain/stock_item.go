package domain

import "time"

// StockItem is a tracked supply (cups, straws, gas, ...) counted in whole
// units. Quantity never goes below zero; deductions floor instead.
type StockItem struct {
	ID        string
	WarungID  string
	Name      string
	Quantity  int
	Unit      string
	MinStock  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s StockItem) IsLow() bool {
	return s.Quantity <= s.MinStock
}

// UsageRule states how many units of a stock item one sold unit of a
// product consumes. Unique per (product, stock item) pair.
type UsageRule struct {
	ID           string
	ProductID    string
	StockItemID  string
	QuantityUsed int
}
