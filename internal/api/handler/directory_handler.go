package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/ports"
)

// DirectoryHandler serves staff account and client management.
type DirectoryHandler struct {
	users   ports.UserService
	clients ports.ClientService
}

func NewDirectoryHandler(users ports.UserService, clients ports.ClientService) *DirectoryHandler {
	return &DirectoryHandler{users: users, clients: clients}
}

// ListUsers handles GET /v1/users.
//
// @Summary      List user admins
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorResponse
// @Router       /v1/users [get]
func (h *DirectoryHandler) ListUsers(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	users, err := h.users.ListUserAdmins(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// CreateUser handles POST /v1/users.
//
// @Summary      Create a user admin
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserAdminRequest  true  "User admin details"
// @Success      201   {object}  domain.User
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/users [post]
func (h *DirectoryHandler) CreateUser(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createUserAdminRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.CreateUserAdmin(c.Request().Context(), actor, ports.CreateUserAdminInput{
		Username: req.Username,
		Password: req.Password,
		Name:     req.Name,
		Email:    req.Email,
	})
	if err != nil {
		return err
	}
	metrics.EntitiesCreatedTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusCreated, user)
}

// SetUserActive handles PUT /v1/users/:id/active.
//
// @Summary      Activate or deactivate a user admin
// @Tags         users
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "User id"
// @Param        body  body  setUserActiveRequest  true  "Desired state"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/users/{id}/active [put]
func (h *DirectoryHandler) SetUserActive(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req setUserActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.users.SetUserActive(c.Request().Context(), actor, c.Param("id"), *req.Active); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClients handles GET /v1/clients.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Client
// @Failure      403  {object}  errorResponse
// @Router       /v1/clients [get]
func (h *DirectoryHandler) ListClients(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	clients, err := h.clients.ListClients(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// OnboardClient handles POST /v1/clients.
//
// @Summary      Onboard a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      onboardClientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/clients [post]
func (h *DirectoryHandler) OnboardClient(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req onboardClientRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	client, err := h.clients.OnboardClient(c.Request().Context(), actor, ports.OnboardClientInput{
		Name:          req.Name,
		Email:         req.Email,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Username:      req.Username,
		Password:      req.Password,
	})
	if err != nil {
		return err
	}
	metrics.EntitiesCreatedTotal.WithLabelValues("client").Inc()
	return c.JSON(http.StatusCreated, client)
}

// SetClientActive handles PUT /v1/clients/:id/active.
//
// @Summary      Offboard or reactivate a client
// @Description  Offboarding requires confirm=true.
// @Tags         clients
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                  true  "Client id"
// @Param        body  body  setClientActiveRequest  true  "Desired state"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      412  {object}  errorResponse
// @Router       /v1/clients/{id}/active [put]
func (h *DirectoryHandler) SetClientActive(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req setClientActiveRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.clients.SetClientActive(c.Request().Context(), actor, c.Param("id"), *req.Active, req.Confirm); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
