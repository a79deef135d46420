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

// SelectionHandler handles basket endpoints.
type SelectionHandler struct {
	svc service.SelectionService
}

// NewSelectionHandler creates a new selection handler.
func NewSelectionHandler(svc service.SelectionService) *SelectionHandler {
	return &SelectionHandler{svc: svc}
}

// AddSelectionRequest represents a basket entry payload.
type AddSelectionRequest struct {
	ClassItemID    string `json:"class_item_id" validate:"required,uuid"`
	Email          string `json:"email" validate:"required,email"`
	ClassName      string `json:"class_name"`
	Image          string `json:"image"`
	Price          string `json:"price"`
	InstructorName string `json:"instructor_name"`
}

// DeleteSelectionResponse reports how many basket rows were removed.
type DeleteSelectionResponse struct {
	DeletedCount int64 `json:"deleted_count"`
}

// AddSelection godoc
// @Summary Add a class to a student's basket
// @Tags selections
// @Accept json
// @Produce json
// @Param selection body AddSelectionRequest true "Selection payload"
// @Success 201 {object} model.Selection
// @Failure 400 {object} errors.ErrorResponse
// @Router /selectedclasses [post]
func (h *SelectionHandler) AddSelection(c echo.Context) error {
	var req AddSelectionRequest
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

	price := decimal.Zero
	if req.Price != "" {
		price, err = decimal.NewFromString(req.Price)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
				Error:   true,
				Message: "invalid price",
				Code:    "INVALID_PRICE",
			})
		}
	}

	selection := &model.Selection{
		ClassItemID:    classItemID,
		Email:          req.Email,
		ClassName:      req.ClassName,
		Image:          req.Image,
		Price:          price,
		InstructorName: req.InstructorName,
	}
	created, err := h.svc.Add(c.Request().Context(), selection)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// MySelections godoc
// @Summary List a student's basket
// @Tags selections
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} model.Selection
// @Router /myselectedclass/{email} [get]
func (h *SelectionHandler) MySelections(c echo.Context) error {
	selections, err := h.svc.ListByStudent(c.Request().Context(), c.Param("email"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, selections)
}

// RemoveSelection godoc
// @Summary Remove a basket entry
// @Tags selections
// @Produce json
// @Param id path string true "Selection ID"
// @Success 200 {object} DeleteSelectionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /myselectedclass/{id} [delete]
func (h *SelectionHandler) RemoveSelection(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid id",
			Code:    "INVALID_ID",
		})
	}

	deleted, err := h.svc.Remove(c.Request().Context(), id)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, DeleteSelectionResponse{DeletedCount: deleted})
}
