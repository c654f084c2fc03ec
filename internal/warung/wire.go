package warung

import (
	"database/sql"

	"go.uber.org/zap"

	"dcreamy/internal/warung/controller"
	"dcreamy/internal/warung/repository"
	"dcreamy/internal/warung/service"
)

// NewModule wires the warung stack. ProfileBinder comes from the account
// module so onboarding can attach the new warung to the owner's profile.
func NewModule(db *sql.DB, profiles service.ProfileBinder, logger *zap.Logger) *controller.WarungController {
	warungRepository := repository.NewMySQLWarungRepository(db)
	warungService := service.NewWarungService(warungRepository, profiles, logger)
	return controller.NewWarungController(warungService, logger)
}
