package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an actor and returns a session token.
//
// @Summary      Login
// @Description  Role selects the dashboard: superadmin, useradmin or client.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	role := domain.Role(req.Role)
	res, err := h.authService.Login(c.Request().Context(), req.Username, req.Password, role)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(roleLabel(role), "failure").Inc()
		return err
	}

	metrics.LoginAttemptsTotal.WithLabelValues(roleLabel(role), "success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: res.Token, Actor: res.Actor})
}

// Me returns the actor behind the current token.
//
// @Summary      Current actor
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Actor
// @Failure      401  {object}  errorResponse
// @Router       /v1/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, actor)
}

// roleLabel keeps metric cardinality bounded when callers send junk roles.
func roleLabel(r domain.Role) string {
	if r.Valid() {
		return string(r)
	}
	return "unknown"
}
