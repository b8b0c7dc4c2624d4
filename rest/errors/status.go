package errors

import (
	"errors"
	"net/http"

	"github.com/datastax/entity-filter/db"
	"github.com/datastax/entity-filter/filter"
	m "github.com/datastax/entity-filter/rest/models"
)

// StatusCode returns the HTTP status matching err
func StatusCode(err error) int {
	var badRequest *BadRequestError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &badRequest), filter.IsFilterError(err):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// NewModelError returns the response body describing err
func NewModelError(err error) m.ModelError {
	modelError := m.ModelError{Description: err.Error()}
	var filterErr *filter.Error
	if errors.As(err, &filterErr) {
		modelError.InternalCode = filterErr.Code.String()
	}
	return modelError
}
