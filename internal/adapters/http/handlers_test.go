package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
)

func TestStatusFor(t *testing.T) {
	type sample struct {
		Name string `validate:"required"`
	}
	verr := validator.New().Struct(sample{})
	require.Error(t, verr)

	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("task not found: %w", entities.ErrRecordNotFound), http.StatusNotFound},
		{entities.ErrForbidden, http.StatusForbidden},
		{entities.ErrConfirmationRequired, http.StatusPreconditionRequired},
		{fmt.Errorf("%w: title", entities.ErrValidation), http.StatusBadRequest},
		{entities.ErrInvalidQuarter, http.StatusBadRequest},
		{entities.ErrUnknownMember, http.StatusBadRequest},
		{entities.ErrEmptyAgenda, http.StatusBadRequest},
		{verr, http.StatusBadRequest},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestClientID(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, services.DefaultClientID, ClientID(c))

	req.Header.Set(HeaderClientID, "laptop")
	assert.Equal(t, "laptop", ClientID(c))

	c.Set(ContextKeyClientID, "tablet")
	assert.Equal(t, "tablet", ClientID(c))
}

func TestFailHidesInternalErrors(t *testing.T) {
	log := logger.NewNop()

	err := fail(log, "boom", errors.New("connection refused"))
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), he.Message)

	err = fail(log, "missing", fmt.Errorf("kpi: %w", entities.ErrRecordNotFound))
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
	assert.Contains(t, he.Message, "record not found")
}

func TestOptionalInt(t *testing.T) {
	e := echo.New()

	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/?year=2026&month=x", nil), httptest.NewRecorder())
	year, err := optionalInt(c, "year")
	require.NoError(t, err)
	assert.Equal(t, 2026, *year)

	_, err = optionalInt(c, "month")
	assert.Error(t, err)

	missing, err := optionalInt(c, "quarter")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
