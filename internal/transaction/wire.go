package transaction

import (
	"database/sql"

	"go.uber.org/zap"

	"dcreamy/internal/businessday"
	productrepo "dcreamy/internal/product/repository"
	"dcreamy/internal/transaction/controller"
	"dcreamy/internal/transaction/repository"
	"dcreamy/internal/transaction/service"
)

// NewModule wires the transaction stack. The stock deducter is shared with
// the stock module so a sale and a manual restock act on the same tables.
func NewModule(db *sql.DB, deduction service.StockDeducter, clock *businessday.Clock, logger *zap.Logger) *controller.TransactionController {
	transactionRepository := repository.NewMySQLTransactionRepository(db)
	productRepository := productrepo.NewMySQLRepository(db)
	recordService := service.NewRecordService(transactionRepository, productRepository, deduction, clock, logger)
	return controller.NewTransactionController(recordService, logger)
}
