package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"musicmentor/internal/auth"
	"musicmentor/internal/errors"
)

// TokenHandler issues bearer tokens.
type TokenHandler struct {
	tokens *auth.TokenService
}

// NewTokenHandler creates a new token handler.
func NewTokenHandler(tokens *auth.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

// TokenRequest is the claims bundle a client asks to have signed.
type TokenRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name"`
}

// TokenResponse carries the signed bearer token.
type TokenResponse struct {
	Token string `json:"token"`
}

// Issue godoc
// @Summary Sign user claims into a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body TokenRequest true "User claims"
// @Success 200 {object} TokenResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /jwt [post]
func (h *TokenHandler) Issue(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error:   true,
			Message: "invalid request body",
			Code:    "INVALID_REQUEST",
		})
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error:   true,
			Message: err.Error(),
			Code:    "VALIDATION_ERROR",
		})
	}

	token, err := h.tokens.Issue(req.Email, req.Name)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// claimsFrom extracts the verified claims the bearer middleware attached to
// the request.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error:   true,
			Message: "Unauthorized access",
			Code:    "UNAUTHORIZED",
		})
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error:   true,
			Message: "Unauthorized access",
			Code:    "UNAUTHORIZED",
		})
	}
	return claims, nil
}
