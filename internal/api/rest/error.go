package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/feral-file/ff-marketplace-v2/internal/domain"
	"github.com/feral-file/ff-marketplace-v2/internal/logger"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	errCodeBadRequest       ErrorCode = "bad_request"
	errCodeNotFound         ErrorCode = "not_found"
	errCodeValidationFailed ErrorCode = "validation_failed"
	errCodeForbidden        ErrorCode = "forbidden"
	errCodeConflict         ErrorCode = "conflict"
	errCodePayloadTooLarge  ErrorCode = "payload_too_large"
	errCodeUnsupportedMedia ErrorCode = "unsupported_media_type"

	// Server errors (5xx)
	errCodeInternalError ErrorCode = "internal_error"
)

// errorResponse represents a standardized error response
type errorResponse struct {
	Error errorDetail `json:"error"`
}

// errorDetail contains error information
type errorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...string) {
	response := errorResponse{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	}

	if len(details) > 0 {
		response.Error.Details = details[0]
	}

	c.JSON(statusCode, response)
}

// respondBadRequest sends a 400 Bad Request response
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusBadRequest, errCodeBadRequest, message, details...)
}

// respondNotFound sends a 404 Not Found response
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondWithError(c, http.StatusNotFound, errCodeNotFound, message, details...)
}

// respondValidationError sends a 400 Bad Request with validation error
func respondValidationError(c *gin.Context, details string) {
	respondWithError(c, http.StatusBadRequest, errCodeValidationFailed, "Validation failed", details)
}

// respondInternalError sends a 500 Internal Server Error response and logs the error
func respondInternalError(c *gin.Context, err error, message string, fields ...zap.Field) {
	logger.Error(err, fields...)
	respondWithError(c, http.StatusInternalServerError, errCodeInternalError, message)
}

// respondLedgerError maps a ledger failure onto a coded HTTP response. Errors
// outside the known sentinel set are treated as internal.
func respondLedgerError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		respondNotFound(c, "Market item not found")
	case errors.Is(err, domain.ErrNotSeller):
		respondWithError(c, http.StatusForbidden, errCodeForbidden, "Caller is not the item seller")
	case errors.Is(err, domain.ErrItemTerminal):
		respondWithError(c, http.StatusConflict, errCodeConflict, "Market item is already sold or canceled")
	case errors.Is(err, domain.ErrZeroPrice),
		errors.Is(err, domain.ErrWrongPayment),
		errors.Is(err, domain.ErrCollectionMismatch),
		errors.Is(err, domain.ErrCollectionNotAllowed),
		errors.Is(err, domain.ErrEscrowNotApproved),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidAmount):
		respondBadRequest(c, message, err.Error())
	default:
		respondInternalError(c, err, message)
	}
}

// respondUploadError maps an upload failure onto a coded HTTP response
func respondUploadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUploadTooLarge):
		respondWithError(c, http.StatusRequestEntityTooLarge, errCodePayloadTooLarge, "Upload exceeds maximum allowed size")
	case errors.Is(err, domain.ErrUnsupportedUploadType):
		respondWithError(c, http.StatusUnsupportedMediaType, errCodeUnsupportedMedia, "Unsupported upload content type")
	case errors.Is(err, domain.ErrEmptyUpload):
		respondBadRequest(c, "Upload is empty")
	default:
		respondInternalError(c, err, "Failed to store upload")
	}
}
