package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/teamboard/core/internal/application/services"
	"github.com/teamboard/core/internal/domain/entities"
	"github.com/teamboard/core/internal/infrastructure/logger"
	"github.com/teamboard/core/internal/ports"
)

// Request context keys and headers shared with the server middleware
const (
	HeaderClientID     = "X-Client-ID"
	ContextKeyClientID = "client_id"
	QueryConfirm       = "confirm"
)

// ErrorResponse is the body of every failed request
type ErrorResponse = ports.ErrorResponse

// MessageResponse is the body of requests that return no record
type MessageResponse = ports.MessageResponse

// ClientID returns the identifier the client sent, or the default client
func ClientID(c echo.Context) string {
	if id, ok := c.Get(ContextKeyClientID).(string); ok && id != "" {
		return id
	}
	if id := c.Request().Header.Get(HeaderClientID); id != "" {
		return id
	}
	return services.DefaultClientID
}

// StatusFor maps domain errors onto HTTP status codes
func StatusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case errors.Is(err, entities.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrConfirmationRequired):
		return http.StatusPreconditionRequired
	case errors.Is(err, entities.ErrValidation),
		errors.Is(err, entities.ErrInvalidStatus),
		errors.Is(err, entities.ErrInvalidPriority),
		errors.Is(err, entities.ErrInvalidCategory),
		errors.Is(err, entities.ErrInvalidQuarter),
		errors.Is(err, entities.ErrInvalidDate),
		errors.Is(err, entities.ErrUnknownMember),
		errors.Is(err, entities.ErrEmptyAgenda),
		errors.Is(err, entities.ErrNegativeCounter),
		errors.As(err, &verrs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err with msg and converts it into an HTTP error. Internal details are only
// exposed for client errors.
func fail(log *logger.Logger, msg string, err error, fields ...interface{}) error {
	code := StatusFor(err)
	fields = append(fields, "error", err.Error(), "status", code)
	if code >= http.StatusInternalServerError {
		log.Errorw(msg, fields...)
		return echo.NewHTTPError(code, http.StatusText(code)).SetInternal(err)
	}
	log.Warnw(msg, fields...)
	return echo.NewHTTPError(code, err.Error()).SetInternal(err)
}

// bind decodes and validates the request body into req
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return nil
}

// optionalString returns a pointer to the query value, nil when absent
func optionalString(c echo.Context, name string) *string {
	if v := c.QueryParam(name); v != "" {
		return &v
	}
	return nil
}

func optionalInt(c echo.Context, name string) (*int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" parameter")
	}
	return &n, nil
}

// requester resolves the member acting for this client
func requester(c echo.Context, session *services.SessionService) (string, error) {
	return session.CurrentMember(c.Request().Context(), ClientID(c))
}
