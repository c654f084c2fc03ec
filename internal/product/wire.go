package product

import (
	"database/sql"

	"go.uber.org/zap"

	"dcreamy/internal/product/repository"
	"dcreamy/internal/product/service"
	stockrepo "dcreamy/internal/stock/repository"
)

func NewModule(db *sql.DB, logger *zap.Logger) *Controller {
	repo := repository.NewMySQLRepository(db)
	ruleRepo := stockrepo.NewMySQLUsageRuleRepository(db)
	svc := service.NewService(repo, ruleRepo)
	return NewController(svc, logger)
}
