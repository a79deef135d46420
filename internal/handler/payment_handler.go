package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
	"musicmentor/internal/service"
)

// PaymentHandler handles payment endpoints.
type PaymentHandler struct {
	svc service.EnrollmentService
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(svc service.EnrollmentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// PaymentIntentRequest asks the provider to authorize an amount.
type PaymentIntentRequest struct {
	Price string `json:"price" validate:"required"`
}

// PaymentIntentResponse carries the provider's client secret.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// CompletePaymentRequest finalizes a provider-authorized payment.
type CompletePaymentRequest struct {
	TransactionID string `json:"transaction_id"`
	ClassItemID   string `json:"class_item_id" validate:"required,uuid"`
	ClassName     string `json:"class_name"`
	Amount        string `json:"amount" validate:"required"`
}

// CreatePaymentIntent godoc
// @Summary Authorize a payment amount with the card provider
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PaymentIntentRequest true "Amount to authorize"
// @Success 200 {object} PaymentIntentResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /create-payment-intent [post]
func (h *PaymentHandler) CreatePaymentIntent(c echo.Context) error {
	if _, err := claimsFrom(c); err != nil {
		return err
	}

	var req PaymentIntentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		})
	}

	amount, err := decimal.NewFromString(req.Price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid amount",
			Code:    "INVALID_AMOUNT",
		})
	}

	secret, err := h.svc.CreatePaymentIntent(c.Request().Context(), amount)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, PaymentIntentResponse{ClientSecret: secret})
}

// CompletePayment godoc
// @Summary Record a payment, clear the basket entry, and take a seat
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompletePaymentRequest true "Payment data"
// @Success 200 {object} repository.EnrollmentResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /payments [post]
func (h *PaymentHandler) CompletePayment(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	var req CompletePaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		})
	}

	classItemID, err := uuid.Parse(req.ClassItemID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid class_item_id",
			Code:    "INVALID_ID",
		})
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid amount",
			Code:    "INVALID_AMOUNT",
		})
	}

	// The verified token, not the body, decides whose payment this is.
	payment := &model.Payment{
		TransactionID: req.TransactionID,
		Email:         claims.Email,
		ClassItemID:   classItemID,
		ClassName:     req.ClassName,
		Amount:        amount,
	}
	result, err := h.svc.CompletePayment(c.Request().Context(), payment)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, result)
}

// PaymentsByStudent godoc
// @Summary List a student's payments, newest first
// @Tags payments
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} model.Payment
// @Router /payments/{email} [get]
func (h *PaymentHandler) PaymentsByStudent(c echo.Context) error {
	payments, err := h.svc.ListPayments(c.Request().Context(), c.Param("email"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, payments)
}
