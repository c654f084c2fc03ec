package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type WarungService interface {
	Create(ctx context.Context, ownerID string, req dto.CreateWarungRequest) (*dto.WarungDTO, error)
	Get(ctx context.Context, warungID string) (*dto.WarungDTO, error)
	Update(ctx context.Context, warungID, ownerID string, req dto.UpdateWarungRequest) (*dto.WarungDTO, error)
}

type WarungController struct {
	service WarungService
	logger  *zap.Logger
}

func NewWarungController(service WarungService, logger *zap.Logger) *WarungController {
	return &WarungController{
		service: service,
		logger:  logger,
	}
}

func (c *WarungController) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req dto.CreateWarungRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.writeValidationError(w, "validation failed", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
		return
	}

	warung, err := c.service.Create(r.Context(), identity.UserID, req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, warung)
}

func (c *WarungController) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok || identity.WarungID == "" {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": "no warung assigned to this account",
		})
		return
	}

	warung, err := c.service.Get(r.Context(), identity.WarungID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, warung)
}

func (c *WarungController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok || identity.WarungID == "" {
		c.writeJSON(w, http.StatusForbidden, map[string]string{
			"error":   "FORBIDDEN",
			"message": "no warung assigned to this account",
		})
		return
	}

	var req dto.UpdateWarungRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		c.writeValidationError(w, "validation failed", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name is required",
		})
		return
	}

	warung, err := c.service.Update(r.Context(), identity.WarungID, identity.UserID, req)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, warung)
}

func (c *WarungController) handleError(w http.ResponseWriter, err error) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": nf.Message})
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{"error": "FORBIDDEN", "message": fe.Message})
		return
	}
	if ce, ok := apperrors.IsConflictError(err); ok {
		c.writeJSON(w, http.StatusConflict, map[string]string{"error": "CONFLICT", "message": ce.Message})
		return
	}

	c.logger.Error("warung request failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *WarungController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *WarungController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
