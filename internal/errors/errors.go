package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserExists is returned when registering an email that is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when a user lookup finds nothing.
	ErrUserNotFound = errors.New("user not found")
	// ErrClassNotFound is returned when a class lookup finds nothing.
	ErrClassNotFound = errors.New("class not found")
	// ErrNoSeatsAvailable is returned when a payment targets a class with no free seats.
	ErrNoSeatsAvailable = errors.New("no seats available")
	// ErrDuplicatePayment is returned when a payment transaction ID was already recorded.
	ErrDuplicatePayment = errors.New("payment already recorded")
	// ErrInvalidAmount is returned when a payment amount is not positive.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInvalidPrice is returned when a class price is not positive.
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidSeats is returned when a class capacity is not positive.
	ErrInvalidSeats = errors.New("invalid seat count")
	// ErrInvalidRole is returned when a role assignment names an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrForbidden is returned when the authenticated identity may not perform the operation.
	ErrForbidden = errors.New("forbidden")
)

// ErrorResponse is the wire shape of every handled error.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error:   true,
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "USER_ALREADY_EXISTS")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrClassNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "CLASS_NOT_FOUND")
	case errors.Is(err, ErrNoSeatsAvailable):
		return NewHTTPError(http.StatusConflict, err.Error(), "NO_SEATS_AVAILABLE")
	case errors.Is(err, ErrDuplicatePayment):
		return NewHTTPError(http.StatusConflict, err.Error(), "DUPLICATE_PAYMENT")
	case errors.Is(err, ErrInvalidAmount):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_AMOUNT")
	case errors.Is(err, ErrInvalidPrice):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_PRICE")
	case errors.Is(err, ErrInvalidSeats):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_SEATS")
	case errors.Is(err, ErrInvalidRole):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_ROLE")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
