package account

import (
	"database/sql"

	"go.uber.org/zap"

	"dcreamy/internal/account/controller"
	"dcreamy/internal/account/repository"
	"dcreamy/internal/account/service"
	"dcreamy/internal/auth"
)

// NewModule wires the account stack. The profiles repository is returned
// too because the warung module updates profiles during onboarding.
func NewModule(db *sql.DB, tokens *auth.TokenManager, logger *zap.Logger) (*controller.AccountController, *repository.MySQLProfilesRepository) {
	profilesRepository := repository.NewMySQLProfilesRepository(db)
	accountService := service.NewAccountService(profilesRepository, tokens, logger)
	return controller.NewAccountController(accountService, logger), profilesRepository
}
