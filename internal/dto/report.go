package dto

// DailyReportDTO sums one business-day window. Day carries the window's
// label, not the calendar date of the individual transactions.
type DailyReportDTO struct {
	Day          string            `json:"day"`
	Income       float64           `json:"income"`
	Expense      float64           `json:"expense"`
	Profit       float64           `json:"profit"`
	Transactions int               `json:"transactions"`
	TopProducts  []ProductSalesDTO `json:"topProducts"`
}

type ProductSalesDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type WeeklyReportDTO struct {
	Days    []DailyReportDTO `json:"days"`
	Income  float64          `json:"income"`
	Expense float64          `json:"expense"`
	Profit  float64          `json:"profit"`
}

// BusinessDayDTO describes the current trading window for the storefront
// banner, including the reset countdown.
type BusinessDayDTO struct {
	Day           string `json:"day"`
	Start         string `json:"start"`
	End           string `json:"end"`
	MsUntilReset  int64  `json:"msUntilReset"`
	CountdownText string `json:"countdownText"`
}
