package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// PositionHandler handles HTTP requests for job positions.
type PositionHandler struct {
	service ports.PositionService
}

func NewPositionHandler(service ports.PositionService) *PositionHandler {
	return &PositionHandler{service: service}
}

// List handles GET /v1/positions.
//
// @Summary      List visible positions
// @Tags         positions
// @Produce      json
// @Security     BearerAuth
// @Param        status     query     string  false  "open or closed"
// @Param        client_id  query     string  false  "Owning client"
// @Success      200        {array}   domain.Position
// @Router       /v1/positions [get]
func (h *PositionHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	positions, err := h.service.ListPositions(c.Request().Context(), actor, ports.ListPositionsFilter{
		Status:   domain.PositionStatus(c.QueryParam("status")),
		ClientID: c.QueryParam("client_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, positions)
}

// Create handles POST /v1/positions.
//
// @Summary      Create a position
// @Description  Client actors always create positions for themselves; staff must pass client_id.
// @Tags         positions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPositionRequest  true  "Position details"
// @Success      201   {object}  domain.Position
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/positions [post]
func (h *PositionHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req createPositionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	position, err := h.service.CreatePosition(c.Request().Context(), actor, ports.CreatePositionInput{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	metrics.EntitiesCreatedTotal.WithLabelValues("position").Inc()
	return c.JSON(http.StatusCreated, position)
}

// Update handles PUT /v1/positions/:id.
//
// @Summary      Edit a position
// @Tags         positions
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Position id"
// @Param        body  body  updatePositionRequest  true  "New title and description"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/positions/{id} [put]
func (h *PositionHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req updatePositionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	err = h.service.UpdatePosition(c.Request().Context(), actor, ports.UpdatePositionInput{
		ID:          c.Param("id"),
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// SetStatus handles PUT /v1/positions/:id/status.
//
// @Summary      Open or close a position
// @Tags         positions
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Position id"
// @Param        body  body  positionStatusRequest  true  "Target status"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/positions/{id}/status [put]
func (h *PositionHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req positionStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.SetPositionStatus(c.Request().Context(), actor, c.Param("id"), domain.PositionStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Toggle handles POST /v1/positions/:id/toggle.
//
// @Summary      Flip a position between open and closed
// @Tags         positions
// @Security     BearerAuth
// @Param        id  path  string  true  "Position id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/positions/{id}/toggle [post]
func (h *PositionHandler) Toggle(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.TogglePosition(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /v1/positions/:id.
//
// @Summary      Delete a position
// @Description  Client only. Requires confirm=true. Candidates of the position are kept.
// @Tags         positions
// @Security     BearerAuth
// @Param        id       path   string  true   "Position id"
// @Param        confirm  query  bool    false  "Explicit confirmation"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      412  {object}  errorResponse
// @Router       /v1/positions/{id} [delete]
func (h *PositionHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	confirmed, _ := strconv.ParseBool(c.QueryParam("confirm"))
	if err := h.service.DeletePosition(c.Request().Context(), actor, c.Param("id"), confirmed); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
