package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hirelane/ats/internal/api/metrics"
	"github.com/hirelane/ats/internal/core/domain"
	"github.com/hirelane/ats/internal/core/ports"
)

// InvoiceHandler handles HTTP requests for client invoices.
type InvoiceHandler struct {
	service ports.InvoiceService
}

func NewInvoiceHandler(service ports.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// List handles GET /v1/invoices.
//
// @Summary      List visible invoices
// @Description  Each invoice carries a derived label: paid, pending or overdue.
// @Tags         invoices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   invoiceResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	views, err := h.service.ListInvoices(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toInvoiceResponses(views))
}

// Generate handles POST /v1/invoices.
//
// @Summary      Generate an invoice
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      generateInvoiceRequest  true  "Invoice details"
// @Success      201   {object}  domain.Invoice
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/invoices [post]
func (h *InvoiceHandler) Generate(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req generateInvoiceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "due_date must be YYYY-MM-DD or RFC 3339")
	}

	invoice, err := h.service.GenerateInvoice(c.Request().Context(), actor, ports.GenerateInvoiceInput{
		ClientID:    req.ClientID,
		Amount:      req.Amount,
		Description: req.Description,
		ProjectName: req.ProjectName,
		DueDate:     due,
	})
	if err != nil {
		return err
	}
	metrics.EntitiesCreatedTotal.WithLabelValues("invoice").Inc()
	return c.JSON(http.StatusCreated, invoice)
}

// SetStatus handles PUT /v1/invoices/:id/status.
//
// @Summary      Mark an invoice paid or pending
// @Tags         invoices
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string                true  "Invoice id"
// @Param        body  body  invoiceStatusRequest  true  "Target status"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      422  {object}  errorResponse
// @Router       /v1/invoices/{id}/status [put]
func (h *InvoiceHandler) SetStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}
	var req invoiceStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.service.SetInvoiceStatus(c.Request().Context(), actor, c.Param("id"), domain.InvoiceStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
