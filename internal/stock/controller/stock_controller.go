package controller

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

type StockItemService interface {
	List(ctx context.Context, warungID string) ([]domain.StockItem, error)
	Create(ctx context.Context, item *domain.StockItem) error
	Update(ctx context.Context, warungID string, item *domain.StockItem) error
	Restock(ctx context.Context, warungID, id string, delta int) (*domain.StockItem, error)
	Deactivate(ctx context.Context, warungID, id string) error
}

type StockController struct {
	service StockItemService
	logger  *zap.Logger
}

func NewStockController(service StockItemService, logger *zap.Logger) *StockController {
	return &StockController{
		service: service,
		logger:  logger,
	}
}

func (c *StockController) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	items, err := c.service.List(r.Context(), identity.WarungID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]dto.StockItemDTO, 0, len(items))
	for _, item := range items {
		out = append(out, dto.StockItemDTO{
			ID:       item.ID,
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			MinStock: item.MinStock,
			IsLow:    item.IsLow(),
		})
	}

	c.writeJSON(w, http.StatusOK, out)
}

func (c *StockController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	var req dto.CreateStockItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateStockItem(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	item := domain.StockItem{
		WarungID: identity.WarungID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinStock: req.MinStock,
	}

	if err := c.service.Create(r.Context(), &item); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, dto.StockItemDTO{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		MinStock: item.MinStock,
		IsLow:    item.IsLow(),
	})
}

func (c *StockController) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.UpdateStockItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Name == "" {
		c.writeValidationError(w, "name is required", apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
		return
	}
	if req.MinStock < 0 {
		c.writeValidationError(w, "minStock must be non-negative", apperrors.ValidationDetail{
			Field:   "minStock",
			Message: "minStock must be zero or greater",
		})
		return
	}

	item := domain.StockItem{
		ID:       id,
		Name:     req.Name,
		Unit:     req.Unit,
		MinStock: req.MinStock,
	}

	if err := c.service.Update(r.Context(), identity.WarungID, &item); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (c *StockController) Restock(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req dto.RestockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if req.Quantity < 1 {
		c.writeValidationError(w, "quantity must be positive", apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
		return
	}

	item, err := c.service.Restock(r.Context(), identity.WarungID, id, req.Quantity)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, dto.StockItemDTO{
		ID:       item.ID,
		Name:     item.Name,
		Quantity: item.Quantity,
		Unit:     item.Unit,
		MinStock: item.MinStock,
		IsLow:    item.IsLow(),
	})
}

func (c *StockController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := c.service.Deactivate(r.Context(), identity.WarungID, id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func validateCreateStockItem(req dto.CreateStockItemRequest) error {
	var details []apperrors.ValidationDetail

	if req.Name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if req.Quantity < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be zero or greater",
		})
	}
	if req.MinStock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "minStock",
			Message: "minStock must be zero or greater",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *StockController) requireWarung(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
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

func (c *StockController) handleError(w http.ResponseWriter, err error) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": nf.Message})
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{"error": "FORBIDDEN", "message": fe.Message})
		return
	}

	c.logger.Error("stock request failed", zap.Error(err))
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

func (c *StockController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *StockController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
