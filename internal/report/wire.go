package report

import (
	"database/sql"

	"go.uber.org/zap"

	"dcreamy/internal/businessday"
	"dcreamy/internal/report/controller"
	"dcreamy/internal/report/repository"
	"dcreamy/internal/report/service"
)

func NewModule(db *sql.DB, clock *businessday.Clock, logger *zap.Logger) *controller.ReportController {
	reportRepository := repository.NewMySQLReportRepository(db)
	reportService := service.NewReportService(reportRepository, clock)
	return controller.NewReportController(reportService, logger)
}
