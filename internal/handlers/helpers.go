package handlers

import (
	"errors"
	"net/http"

	"github.com/archnet-io/backend/internal/middleware"
	"github.com/archnet-io/backend/internal/models"
	"github.com/archnet-io/backend/internal/repositories"
	"github.com/labstack/echo/v4"
)

// getUserIDFromContext returns the authenticated caller's user ID, or 0 when
// the request carries no resolved claims.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get(middleware.ContextKeyClaims).(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// httpError maps repository sentinel errors onto the stable HTTP failure
// signals of the API; anything unrecognized is an internal storage fault.
func httpError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, repositories.ErrNotConnected):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, repositories.ErrInvalidTarget),
		errors.Is(err, repositories.ErrDuplicatePending),
		errors.Is(err, repositories.ErrAlreadyConnected),
		errors.Is(err, repositories.ErrAlreadyProcessed),
		errors.Is(err, repositories.ErrAlreadyAssociate),
		errors.Is(err, repositories.ErrEmptyContent):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
