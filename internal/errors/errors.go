package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrProductNotFound is returned when a referenced product is missing.
	ErrProductNotFound = errors.New("product not found")
	// ErrAddressNotFound is returned when an address is missing or owned by someone else.
	ErrAddressNotFound = errors.New("address not found")
	// ErrOrderNotFound is returned when an order is missing or not visible to the caller.
	ErrOrderNotFound = errors.New("order not found")
	// ErrReviewNotFound is returned when a review is missing or not owned by the caller.
	ErrReviewNotFound = errors.New("review not found")
	// ErrEmailTaken is returned when registering with an email already in use.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials is returned when email or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateReview is returned when a user reviews the same product twice.
	ErrDuplicateReview = errors.New("you have already reviewed this product")
	// ErrInvalidRating is returned when a rating falls outside 1..5.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
	// ErrInvalidResetToken covers both unknown and expired reset tokens;
	// the two cases are deliberately indistinguishable.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrPasswordTooShort is returned before any database access on reset.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrSelfAdminChange is returned when an admin tries to revoke their own flag.
	ErrSelfAdminChange = errors.New("cannot change your own admin status")
	// ErrSelfDelete is returned when an admin tries to delete their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")
	// ErrInvalidOrderStatus is returned on an unknown status transition target.
	ErrInvalidOrderStatus = errors.New("invalid order status")
	// ErrPaymentGateway is returned when the payment gateway rejects or fails.
	ErrPaymentGateway = errors.New("payment gateway request failed")
)

// HTTPError carries the status code a domain error maps to.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates an HTTP error.
func NewHTTPError(statusCode int, message string) *HTTPError {
	return &HTTPError{StatusCode: statusCode, Message: message}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors collapse
// to a generic 500 so internals never leak into responses.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrProductNotFound),
		errors.Is(err, ErrAddressNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, ErrReviewNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrEmailTaken),
		errors.Is(err, ErrDuplicateReview),
		errors.Is(err, ErrInvalidRating),
		errors.Is(err, ErrInvalidResetToken),
		errors.Is(err, ErrPasswordTooShort),
		errors.Is(err, ErrSelfAdminChange),
		errors.Is(err, ErrSelfDelete),
		errors.Is(err, ErrInvalidOrderStatus):
		return NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrPaymentGateway):
		return NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
