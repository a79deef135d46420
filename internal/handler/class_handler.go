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

// ClassHandler handles catalog endpoints.
type ClassHandler struct {
	svc service.ClassService
}

// NewClassHandler creates a new class handler.
func NewClassHandler(svc service.ClassService) *ClassHandler {
	return &ClassHandler{svc: svc}
}

// AddClassRequest represents a new class offering.
type AddClassRequest struct {
	Title           string `json:"title" validate:"required"`
	InstructorName  string `json:"instructor_name"`
	InstructorEmail string `json:"instructor_email" validate:"required,email"`
	Image           string `json:"image"`
	Price           string `json:"price" validate:"required"`
	AvailableSeats  int    `json:"available_seats" validate:"required"`
}

// UpdateStatusRequest carries a lifecycle transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved denied"`
}

// UpdateFeedbackRequest carries admin feedback text.
type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"required"`
}

// ListClasses godoc
// @Summary List all classes
// @Tags classes
// @Produce json
// @Success 200 {array} model.Class
// @Router /allclass [get]
func (h *ClassHandler) ListClasses(c echo.Context) error {
	classes, err := h.svc.List(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, classes)
}

// AddClass godoc
// @Summary Publish a new class offering
// @Tags classes
// @Accept json
// @Produce json
// @Param class body AddClassRequest true "Class payload"
// @Success 201 {object} model.Class
// @Failure 400 {object} errors.ErrorResponse
// @Router /addclass [post]
func (h *ClassHandler) AddClass(c echo.Context) error {
	var req AddClassRequest
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

	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid price",
			Code:    "INVALID_PRICE",
		})
	}

	class := &model.Class{
		Title:           req.Title,
		InstructorName:  req.InstructorName,
		InstructorEmail: req.InstructorEmail,
		Image:           req.Image,
		Price:           price,
		AvailableSeats:  req.AvailableSeats,
	}
	created, err := h.svc.Create(c.Request().Context(), class)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// MyClasses godoc
// @Summary List classes by instructor email
// @Tags classes
// @Produce json
// @Param email path string true "Instructor email"
// @Success 200 {array} model.Class
// @Router /myclass/{email} [get]
func (h *ClassHandler) MyClasses(c echo.Context) error {
	classes, err := h.svc.ListByInstructor(c.Request().Context(), c.Param("email"))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, classes)
}

// UpdateStatus godoc
// @Summary Transition a class lifecycle status
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param request body UpdateStatusRequest true "Status payload"
// @Success 200 {object} model.Class
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /allclass/{id} [patch]
func (h *ClassHandler) UpdateStatus(c echo.Context) error {
	id, err := parseClassID(c)
	if err != nil {
		return err
	}

	var req UpdateStatusRequest
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

	class, err := h.svc.SetStatus(c.Request().Context(), id, model.ClassStatus(req.Status))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, class)
}

// UpdateFeedback godoc
// @Summary Attach feedback to a class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param request body UpdateFeedbackRequest true "Feedback payload"
// @Success 200 {object} model.Class
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /classfeedback/{id} [patch]
func (h *ClassHandler) UpdateFeedback(c echo.Context) error {
	id, err := parseClassID(c)
	if err != nil {
		return err
	}

	var req UpdateFeedbackRequest
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

	class, err := h.svc.SetFeedback(c.Request().Context(), id, req.Feedback)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, class)
}

// UpdateClass godoc
// @Summary Apply a partial update to a class
// @Tags classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param request body object true "Partial class document"
// @Success 200 {object} model.Class
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /updateclass/{id} [patch]
func (h *ClassHandler) UpdateClass(c echo.Context) error {
	id, err := parseClassID(c)
	if err != nil {
		return err
	}

	var fields map[string]interface{}
	if err := c.Bind(&fields); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}

	class, err := h.svc.PatchFields(c.Request().Context(), id, fields)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, class)
}

// PopularClasses godoc
// @Summary Top classes by enrollment
// @Tags classes
// @Produce json
// @Success 200 {array} model.Class
// @Router /popularclasses [get]
func (h *ClassHandler) PopularClasses(c echo.Context) error {
	classes, err := h.svc.Popular(c.Request().Context(), service.DefaultPopularLimit)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, classes)
}

// PopularInstructors godoc
// @Summary Instructors ranked by total enrollment
// @Tags classes
// @Produce json
// @Success 200 {array} model.InstructorSummary
// @Router /popularinstructors [get]
func (h *ClassHandler) PopularInstructors(c echo.Context) error {
	summaries, err := h.svc.PopularInstructors(c.Request().Context(), service.DefaultPopularLimit)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summaries)
}

func parseClassID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid id",
			Code:    "INVALID_ID",
		})
	}
	return id, nil
}
