package dto

type StockItemDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	MinStock int    `json:"minStock"`
	IsLow    bool   `json:"isLow"`
}

type CreateStockItemRequest struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	MinStock int    `json:"minStock"`
}

type UpdateStockItemRequest struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	MinStock int    `json:"minStock"`
}

type RestockRequest struct {
	Quantity int `json:"quantity"`
}
