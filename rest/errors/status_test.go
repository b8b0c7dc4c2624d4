package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/datastax/entity-filter/db"
	"github.com/datastax/entity-filter/filter"
	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	_, filterErr := filter.ParseCollectionToken("Orders | Any | Status == Status")

	items := []struct {
		name     string
		err      error
		expected int
	}{
		{"no error", nil, http.StatusOK},
		{"bad request", NewBadRequestError("pageSize must be 100 or less"), http.StatusBadRequest},
		{"filter error", filterErr, http.StatusBadRequest},
		{"wrapped filter error", fmt.Errorf("list orders: %w", filterErr), http.StatusBadRequest},
		{"unsupported", fmt.Errorf("%w: nested path", db.ErrUnsupported), http.StatusNotImplemented},
		{"internal", NewInternalError("decoder"), http.StatusInternalServerError},
		{"other", errors.New("unavailable"), http.StatusInternalServerError},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			assert.Equal(t, item.expected, StatusCode(item.err))
		})
	}
}

func TestNewModelError(t *testing.T) {
	_, err := filter.ParseCollectionToken("[Orders | Some | Status == Status]")

	modelError := NewModelError(err)
	assert.Equal(t, "unknown quantifier", modelError.InternalCode)
	assert.Equal(t, err.Error(), modelError.Description)

	modelError = NewModelError(NewBadRequestError("page must be 1 or greater"))
	assert.Empty(t, modelError.InternalCode)
	assert.Equal(t, "page must be 1 or greater", modelError.Description)
}
