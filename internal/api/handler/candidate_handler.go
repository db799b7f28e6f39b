package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// CandidateHandler handles HTTP requests for candidate screening.
type CandidateHandler struct {
	service ports.CandidateService
}

func NewCandidateHandler(service ports.CandidateService) *CandidateHandler {
	return &CandidateHandler{service: service}
}

// List handles GET /v1/candidates.
//
// @Summary      List visible candidates
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        position_id  query     string  false  "Position filter"
// @Param        status       query     string  false  "pending, selected, rejected or on-hold"
// @Success      200          {array}   candidateResponse
// @Router       /v1/candidates [get]
func (h *CandidateHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	views, err := h.service.ListCandidates(c.Request().Context(), actor, ports.ListCandidatesFilter{
		PositionID: c.QueryParam("position_id"),
		Status:     domain.CandidateStatus(c.QueryParam("status")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCandidateResponses(views))
}

// Upload handles POST /v1/candidates.
//
// @Summary      Upload a candidate
// @Description  Staff only. The position must be visible and open.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      uploadCandidateRequest  true  "Candidate details"
// @Success      201   {object}  domain.Candidate
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/candidates [post]
func (h *CandidateHandler) Upload(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req uploadCandidateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	candidate, err := h.service.UploadCandidate(c.Request().Context(), actor, ports.UploadCandidateInput{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		PositionID: req.PositionID,
		Resume:     req.Resume,
	})
	if err != nil {
		return err
	}
	metrics.EntitiesCreatedTotal.WithLabelValues("candidate").Inc()
	return c.JSON(http.StatusCreated, candidate)
}

// SetStatus handles PUT /v1/candidates/:id/status.
//
// @Summary      Move a candidate to a new status
// @Description  Moving to rejected queues a notification to the candidate.
// @Tags         candidates
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                  true  "Candidate id"
// @Param        body  body  candidateStatusRequest  true  "Target status and optional notes"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/candidates/{id}/status [put]
func (h *CandidateHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req candidateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	status := domain.CandidateStatus(req.Status)
	if err := h.service.SetCandidateStatus(c.Request().Context(), actor, c.Param("id"), status, req.Notes); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Annotate handles PUT /v1/candidates/:id/notes.
//
// @Summary      Replace interview notes
// @Tags         candidates
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                 true  "Candidate id"
// @Param        body  body  candidateNotesRequest  true  "Notes"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Router       /v1/candidates/{id}/notes [put]
func (h *CandidateHandler) Annotate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req candidateNotesRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.AnnotateCandidate(c.Request().Context(), actor, c.Param("id"), req.Notes); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ResendRejection handles POST /v1/candidates/:id/rejection-notice.
//
// @Summary      Resend the rejection notice
// @Tags         candidates
// @Security     BearerAuth
// @Param        id  path  string  true  "Candidate id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/candidates/{id}/rejection-notice [post]
func (h *CandidateHandler) ResendRejection(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	if err := h.service.ResendRejectionNotice(c.Request().Context(), actor, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
