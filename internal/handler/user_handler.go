package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "musicmentor/internal/errors"
	"musicmentor/internal/model"
	"musicmentor/internal/service"
)

// UserHandler handles directory endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// RegisterUserRequest represents a registration payload.
type RegisterUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Image string `json:"image"`
}

// UpdateRoleRequest represents a role assignment payload.
type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// ListUsers godoc
// @Summary List all users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.List(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, users)
}

// RegisterUser godoc
// @Summary Register a user, keyed by email
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterUserRequest true "User payload"
// @Success 200 {object} map[string]string "duplicate email"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) RegisterUser(c echo.Context) error {
	var req RegisterUserRequest
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

	user := &model.User{Name: req.Name, Email: req.Email, Image: req.Image}
	created, err := h.svc.Register(c.Request().Context(), user)
	if err != nil {
		// The legacy contract answers duplicate registration with a plain
		// message, not an error status.
		if err == apperrors.ErrUserExists {
			return c.JSON(http.StatusOK, echo.Map{"message": "User is already exist"})
		}
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, created)
}

// CheckAdmin godoc
// @Summary Report whether the caller is an admin
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/admin/{email} [get]
func (h *UserHandler) CheckAdmin(c echo.Context) error {
	return h.checkRole(c, model.RoleAdmin, "admin")
}

// CheckInstructor godoc
// @Summary Report whether the caller is an instructor
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/instructor/{email} [get]
func (h *UserHandler) CheckInstructor(c echo.Context) error {
	return h.checkRole(c, model.RoleInstructor, "instructor")
}

// CheckStudent godoc
// @Summary Report whether the caller is a student
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param email path string true "User email"
// @Success 200 {object} map[string]bool
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/student/{email} [get]
func (h *UserHandler) CheckStudent(c echo.Context) error {
	return h.checkRole(c, model.RoleStudent, "student")
}

// checkRole answers the "is this email an X" endpoints. A caller asking
// about any email but their own gets false immediately; the directory is
// never consulted for a foreign identity.
func (h *UserHandler) checkRole(c echo.Context, role model.Role, field string) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	email := c.Param("email")
	if claims.Email != email {
		return c.JSON(http.StatusOK, echo.Map{field: false})
	}

	has, err := h.svc.HasRole(c.Request().Context(), claims.Email, email, role)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{field: has})
}

// UpdateRole godoc
// @Summary Assign a role to a user (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param request body UpdateRoleRequest true "Role payload"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [patch]
func (h *UserHandler) UpdateRole(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error:   true,
			Message: "invalid id",
			Code:    "INVALID_ID",
		})
	}

	var req UpdateRoleRequest
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

	user, err := h.svc.SetRole(c.Request().Context(), claims.Email, uint(id), model.Role(req.Role))
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, user)
}

// ListInstructors godoc
// @Summary List all instructors
// @Tags users
// @Produce json
// @Success 200 {array} model.User
// @Router /allinstructors [get]
func (h *UserHandler) ListInstructors(c echo.Context) error {
	instructors, err := h.svc.ListInstructors(c.Request().Context())
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, instructors)
}
