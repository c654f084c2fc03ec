package stock

import (
	"database/sql"

	"go.uber.org/zap"

	"dcreamy/internal/stock/controller"
	"dcreamy/internal/stock/repository"
	"dcreamy/internal/stock/service"
)

// NewModule wires the stock package and hands back both the HTTP
// controller and the deduction service, which the transaction module
// consumes directly.
func NewModule(db *sql.DB, logger *zap.Logger) (*controller.StockController, *service.DeductionService) {
	itemRepo := repository.NewMySQLStockItemRepository(db)
	ruleRepo := repository.NewMySQLUsageRuleRepository(db)

	deduction := service.NewDeductionService(ruleRepo, itemRepo, logger)
	items := service.NewStockItemService(itemRepo)

	return controller.NewStockController(items, logger), deduction
}
