package product

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/domain"
	apperrors "dcreamy/internal/errors"
)

type Controller struct {
	service Service
	logger  *zap.Logger
}

func NewController(service Service, logger *zap.Logger) *Controller {
	return &Controller{
		service: service,
		logger:  logger,
	}
}

func (c *Controller) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	products, err := c.service.List(r.Context(), identity.WarungID)
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, toProductDTO(p))
	}

	c.writeJSON(w, http.StatusOK, out)
}

func (c *Controller) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateProductFields(req.Name, req.BuyPrice, req.SellPrice, req.Stock); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	p := domain.Product{
		WarungID:  identity.WarungID,
		Name:      req.Name,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		Category:  req.Category,
		Emoji:     req.Emoji,
	}

	if err := c.service.Create(r.Context(), &p); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, toProductDTO(p))
}

func (c *Controller) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateProductFields(req.Name, req.BuyPrice, req.SellPrice, req.Stock); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	p := domain.Product{
		ID:        id,
		Name:      req.Name,
		BuyPrice:  req.BuyPrice,
		SellPrice: req.SellPrice,
		Stock:     req.Stock,
		Category:  req.Category,
		Emoji:     req.Emoji,
	}

	if err := c.service.Update(r.Context(), identity.WarungID, &p); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (c *Controller) HandleDelete(w http.ResponseWriter, r *http.Request) {
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

func (c *Controller) HandleGetUsage(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	rules, err := c.service.Usage(r.Context(), identity.WarungID, id)
	if err != nil {
		c.handleError(w, err)
		return
	}

	out := make([]UsageRuleDTO, 0, len(rules))
	for _, rule := range rules {
		out = append(out, UsageRuleDTO{
			StockItemID:  rule.StockItemID,
			QuantityUsed: rule.QuantityUsed,
		})
	}

	c.writeJSON(w, http.StatusOK, out)
}

func (c *Controller) HandleSetUsage(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	var req SetUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	var details []apperrors.ValidationDetail
	for idx, rule := range req.Rules {
		if rule.StockItemID == "" {
			details = append(details, apperrors.ValidationDetail{
				Field:   indexedField("rules", idx, "stockItemId"),
				Message: "stockItemId is required",
			})
		}
		if rule.QuantityUsed < 1 {
			details = append(details, apperrors.ValidationDetail{
				Field:   indexedField("rules", idx, "quantityUsed"),
				Message: "quantityUsed must be at least 1",
			})
		}
	}
	if len(details) > 0 {
		c.writeValidationError(w, "validation failed", details...)
		return
	}

	rules := make([]domain.UsageRule, len(req.Rules))
	for i, rule := range req.Rules {
		rules[i] = domain.UsageRule{
			ProductID:    id,
			StockItemID:  rule.StockItemID,
			QuantityUsed: rule.QuantityUsed,
		}
	}

	if err := c.service.SetUsage(r.Context(), identity.WarungID, id, rules); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func toProductDTO(p domain.Product) ProductDTO {
	return ProductDTO{
		ID:        p.ID,
		Name:      p.Name,
		BuyPrice:  p.BuyPrice,
		SellPrice: p.SellPrice,
		Margin:    p.Margin(),
		Stock:     p.Stock,
		Category:  p.Category,
		Emoji:     p.Emoji,
		IsActive:  p.IsActive,
	}
}

func validateProductFields(name string, buyPrice, sellPrice float64, stock int) error {
	var details []apperrors.ValidationDetail

	if name == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "name",
			Message: "name must not be empty",
		})
	}
	if buyPrice < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "buyPrice",
			Message: "buyPrice must be non-negative",
		})
	}
	if sellPrice < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "sellPrice",
			Message: "sellPrice must be non-negative",
		})
	}
	if stock < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "stock",
			Message: "stock must be zero or greater",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func indexedField(list string, idx int, field string) string {
	return list + "[" + strconv.Itoa(idx) + "]." + field
}

func (c *Controller) requireWarung(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
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

func (c *Controller) handleError(w http.ResponseWriter, err error) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": nf.Message})
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{"error": "FORBIDDEN", "message": fe.Message})
		return
	}

	c.logger.Error("product request failed", zap.Error(err))
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

func (c *Controller) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *Controller) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
