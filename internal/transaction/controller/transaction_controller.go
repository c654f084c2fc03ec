package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"dcreamy/internal/auth"
	"dcreamy/internal/domain"
	"dcreamy/internal/dto"
	apperrors "dcreamy/internal/errors"
)

const defaultListLimit = 50

type RecordService interface {
	Record(ctx context.Context, t *domain.Transaction) (*dto.RecordResult, error)
	List(ctx context.Context, warungID, label string, limit int) ([]dto.TransactionDTO, error)
	Delete(ctx context.Context, warungID, id string) error
}

type TransactionController struct {
	service RecordService
	logger  *zap.Logger
}

func NewTransactionController(service RecordService, logger *zap.Logger) *TransactionController {
	return &TransactionController{
		service: service,
		logger:  logger,
	}
}

func (c *TransactionController) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	var req dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := validateCreateTransaction(req); err != nil {
		ve, _ := apperrors.IsValidationError(err)
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = domain.PaymentCash
	}

	t := domain.Transaction{
		WarungID:      identity.WarungID,
		Type:          req.Type,
		Amount:        req.Amount,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		Category:      req.Category,
		Note:          req.Note,
		PaymentMethod: paymentMethod,
		CreatedBy:     identity.UserID,
	}

	result, err := c.service.Record(r.Context(), &t)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusCreated, result)
}

func (c *TransactionController) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	limit := defaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			c.writeValidationError(w, "invalid limit", apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be an integer between 1 and 500",
			})
			return
		}
		limit = parsed
	}

	transactions, err := c.service.List(r.Context(), identity.WarungID, r.URL.Query().Get("day"), limit)
	if err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, transactions)
}

func (c *TransactionController) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := c.requireWarung(w, r)
	if !ok {
		return
	}

	id := chi.URLParam(r, "id")

	if err := c.service.Delete(r.Context(), identity.WarungID, id); err != nil {
		c.handleError(w, err)
		return
	}

	c.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func validateCreateTransaction(req dto.CreateTransactionRequest) error {
	var details []apperrors.ValidationDetail

	if req.Type != domain.TransactionIncome && req.Type != domain.TransactionExpense {
		details = append(details, apperrors.ValidationDetail{
			Field:   "type",
			Message: "type must be income or expense",
		})
	}

	if req.Amount < 0 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount must be non-negative",
		})
	}

	// A bare expense or income needs an explicit amount; only a product
	// sale can derive it from the catalog price.
	if req.Amount == 0 && req.ProductID == nil {
		details = append(details, apperrors.ValidationDetail{
			Field:   "amount",
			Message: "amount is required when no product is given",
		})
	}

	if req.Quantity != nil && *req.Quantity < 1 {
		details = append(details, apperrors.ValidationDetail{
			Field:   "quantity",
			Message: "quantity must be at least 1",
		})
	}

	if req.ProductID != nil && *req.ProductID == "" {
		details = append(details, apperrors.ValidationDetail{
			Field:   "productId",
			Message: "productId must not be empty",
		})
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}

	return nil
}

func (c *TransactionController) requireWarung(w http.ResponseWriter, r *http.Request) (auth.Identity, bool) {
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

func (c *TransactionController) handleError(w http.ResponseWriter, err error) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{"error": "NOT_FOUND", "message": nf.Message})
		return
	}
	if fe, ok := apperrors.IsForbiddenError(err); ok {
		c.writeJSON(w, http.StatusForbidden, map[string]string{"error": "FORBIDDEN", "message": fe.Message})
		return
	}

	c.logger.Error("transaction request failed", zap.Error(err))
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

func (c *TransactionController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *TransactionController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}
