package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	httpHandlers "github.com/teamboard/core/internal/adapters/http"
	"github.com/teamboard/core/internal/domain/entities"
)

// clientIDMiddleware stores the caller's client identifier in the context
func clientIDMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := strings.TrimSpace(c.Request().Header.Get(httpHandlers.HeaderClientID))
			if id != "" {
				c.Set(httpHandlers.ContextKeyClientID, id)
			}
			return next(c)
		}
	}
}

// requireConfirmation rejects destructive requests that were not confirmed with ?confirm=true
func requireConfirmation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, _ := strconv.ParseBool(c.QueryParam(httpHandlers.QueryConfirm))
			if !ok {
				return echo.NewHTTPError(http.StatusPreconditionRequired, entities.ErrConfirmationRequired.Error()).
					SetInternal(entities.ErrConfirmationRequired)
			}
			return next(c)
		}
	}
}
