package ginserver

import (
	"errors"
	"log/slog"
	"net/http"

	gin "github.com/gin-gonic/gin"

	domainbooking "campusrent/internal/domain/booking"
	domainproduct "campusrent/internal/domain/product"
	domainreviews "campusrent/internal/domain/reviews"
	domainrange "campusrent/internal/domain/shared/daterange"
	domainuser "campusrent/internal/domain/user"
)

// respondDomainError maps sentinel errors onto distinct HTTP statuses so a
// caller can tell a conflict from a bad request without parsing messages.
func respondDomainError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case isValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isAuthorizationError(err):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case isNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case isConflictError(err):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case isStateError(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		if logger != nil {
			logger.Error("request failed", "error", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isValidationError(err error) bool {
	return errors.Is(err, domainrange.ErrInvalidRange) ||
		errors.Is(err, domainbooking.ErrStartInPast) ||
		errors.Is(err, domainbooking.ErrSelfBooking) ||
		errors.Is(err, domainbooking.ErrRenterRequired) ||
		errors.Is(err, domainbooking.ErrUnknownDecision) ||
		errors.Is(err, domainreviews.ErrInvalidRating) ||
		errors.Is(err, domainproduct.ErrUnavailable) ||
		errors.Is(err, domainproduct.ErrNameRequired) ||
		errors.Is(err, domainproduct.ErrOwnerRequired) ||
		errors.Is(err, domainproduct.ErrInvalidPrice) ||
		errors.Is(err, domainuser.ErrIDRequired)
}

func isAuthorizationError(err error) bool {
	return errors.Is(err, domainbooking.ErrNotOwner) ||
		errors.Is(err, domainreviews.ErrNotRenter)
}

func isNotFoundError(err error) bool {
	return errors.Is(err, domainbooking.ErrNotFound) ||
		errors.Is(err, domainproduct.ErrNotFound) ||
		errors.Is(err, domainreviews.ErrNotFound) ||
		errors.Is(err, domainuser.ErrNotFound)
}

func isConflictError(err error) bool {
	return errors.Is(err, domainbooking.ErrDatesUnavailable) ||
		errors.Is(err, domainbooking.ErrConcurrentUpdate) ||
		errors.Is(err, domainreviews.ErrAlreadyReviewed) ||
		errors.Is(err, domainuser.ErrEmailAlreadyUsed)
}

func isStateError(err error) bool {
	return errors.Is(err, domainbooking.ErrInvalidState) ||
		errors.Is(err, domainreviews.ErrBookingNotCompleted)
}
