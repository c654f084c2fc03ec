package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type ReportService interface {
	Daily(ctx context.Context, warungID, label string) (*dto.DailyReportDTO, error)
	Weekly(ctx context.Context, warungID string) (*dto.WeeklyReportDTO, error)
	BusinessDay() *dto.BusinessDayDTO
}

type ReportController struct {
	service ReportService
	logger  *zap.Logger
}

func NewReportController(service ReportService, logger *zap.Logger) *ReportController {
	return &ReportController{
		service: service,
		logger:  logger,
	}
}

func (c *ReportController) Daily(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	report, err := c.service.Daily(r.Context(), identity.WarungID, r.URL.Query().Get("date"))
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, report)
}

func (c *ReportController) Weekly(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	report, err := c.service.Weekly(r.Context(), identity.WarungID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, report)
}

// BusinessDay needs no warung; the trading window is the same for everyone.
func (c *ReportController) BusinessDay(w http.ResponseWriter, r *http.Request) {
	c.writeJSON(w, http.StatusOK, c.service.BusinessDay())
}

func (c *ReportController) requireWarung(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok || identity.WarungID == "" {
		c.writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "FORBIDDEN",
			"message": "no warung assigned to this account",
		})
		return auth.Identity{}, false
	}
	return identity, true
}

func (c *ReportController) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":   "VALIDATION_ERROR",
			"message": ve.Message,
			"details": ve.Details,
		})
		return
	}

	c.logger.Error("report request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

func (c *ReportController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
