package httpx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Sentinel errors services return. Handlers translate them to HTTP codes
// through Respond so every resource maps failures the same way.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ValidationError carries field-level messages for a 422 response.
// The wire shape is {"errors": {"field": ["message", ...]}}.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	for _, messages := range e.Fields {
		if len(messages) > 0 {
			return messages[0]
		}
	}
	return "validation failed"
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string][]string{field: {message}}}
}

// AddField appends a message to an existing validation error.
func (e *ValidationError) AddField(field, message string) {
	if e.Fields == nil {
		e.Fields = map[string][]string{}
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// RespondError maps a service error onto the wire:
// ValidationError → 422 envelope, ErrNotFound → 404, ErrConflict → 409,
// everything else → 500 with a generic message.
func RespondError(c *gin.Context, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": ve.Fields})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "an unexpected error occurred"})
	}
}
