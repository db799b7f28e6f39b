package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/middleware"
	"github.com/hirelane/ats/internal/core/domain"
)

// ctxActor extracts the actor injected by the Auth middleware and performs
// a fast-fail check before any service call: a zero actor means the
// middleware never ran, which is reported as 401.
func ctxActor(c echo.Context) (domain.Actor, error) {
	actor, ok := c.Get(middleware.ActorKey).(domain.Actor)
	if !ok || actor.ID == "" || !actor.Role.Valid() {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return actor, nil
}

// bindAndValidate decodes the request body into req and runs the echo
// validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
