package product

type ProductDTO struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	BuyPrice  float64 `json:"buyPrice"`
	SellPrice float64 `json:"sellPrice"`
	Margin    float64 `json:"margin"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
	Emoji     *string `json:"emoji"`
	IsActive  bool    `json:"isActive"`
}

type CreateProductRequest struct {
	Name      string  `json:"name"`
	BuyPrice  float64 `json:"buyPrice"`
	SellPrice float64 `json:"sellPrice"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
	Emoji     *string `json:"emoji"`
}

type UpdateProductRequest struct {
	Name      string  `json:"name"`
	BuyPrice  float64 `json:"buyPrice"`
	SellPrice float64 `json:"sellPrice"`
	Stock     int     `json:"stock"`
	Category  string  `json:"category"`
	Emoji     *string `json:"emoji"`
}

type UsageRuleDTO struct {
	StockItemID  string `json:"stockItemId"`
	QuantityUsed int    `json:"quantityUsed"`
}

type SetUsageRequest struct {
	Rules []UsageRuleDTO `json:"rules"`
}
