package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/estilobarber/barberia-api/internal/domain/appointment"
	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/httpresp"
	ucAppointment "github.com/estilobarber/barberia-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// CitaHandler is the staff/admin surface over appointments.
type CitaHandler struct {
	repo          domain.Repository
	book          *ucAppointment.Book
	listByDate    *ucAppointment.ListCitasByDate
	changeStatus  *ucAppointment.ChangeStatus
	reschedule    *ucAppointment.Reschedule
	stats         *ucAppointment.Stats
	updatePayment *ucAppointment.UpdatePayment
	checkout      *ucAppointment.CreateCheckout
	tz            string
}

func NewCitaHandler(
	repo domain.Repository,
	book *ucAppointment.Book,
	listByDate *ucAppointment.ListCitasByDate,
	changeStatus *ucAppointment.ChangeStatus,
	reschedule *ucAppointment.Reschedule,
	stats *ucAppointment.Stats,
	updatePayment *ucAppointment.UpdatePayment,
	checkout *ucAppointment.CreateCheckout,
	tz string,
) *CitaHandler {
	return &CitaHandler{
		repo:          repo,
		book:          book,
		listByDate:    listByDate,
		changeStatus:  changeStatus,
		reschedule:    reschedule,
		stats:         stats,
		updatePayment: updatePayment,
		checkout:      checkout,
		tz:            tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCitaRequest struct {
	ClienteUserID uint                             `json:"clienteUserId" binding:"required"`
	EmpleadoID    uint                             `json:"empleadoId" binding:"required"`
	Servicios     []ucAppointment.BookServiceInput `json:"servicios" binding:"required"`
	Fecha         string                           `json:"fecha" binding:"required"`
	Horario       string                           `json:"horario" binding:"required"`
	Notas         string                           `json:"notas"`
}

type RescheduleCitaRequest struct {
	Fecha   string `json:"fecha" binding:"required"`
	Horario string `json:"horario" binding:"required"`
}

type ChangeEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

type UpdatePagoRequest struct {
	Estado         string  `json:"estado" binding:"required"`
	Metodo         string  `json:"metodo"`
	Pagado         float64 `json:"pagado"`
	Impuesto       float64 `json:"impuesto"`
	Propina        float64 `json:"propina"`
	FacturaEmitida bool    `json:"facturaEmitida"`
	Override       bool    `json:"override"`
}

// ======================================================
// CRUD
// ======================================================

func (h *CitaHandler) List(c *gin.Context) {
	dateStr := c.Query("fecha")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_fecha", "Fecha obligatoria.")
		return
	}

	date, err := parseDateIn(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_fecha", "Fecha inválida.")
		return
	}

	var staffID uint
	if raw := c.Query("empleadoId"); raw != "" {
		id, ok := parseUintParam(raw)
		if !ok {
			httperr.BadRequest(c, "invalid_empleado_id", "Empleado inválido.")
			return
		}
		staffID = id
	}

	citas, err := h.listByDate.Execute(c.Request.Context(), staffID, date)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, citas)
}

func (h *CitaHandler) Get(c *gin.Context) {
	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	ap, err := h.repo.GetAppointment(c.Request.Context(), citaID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.OK(c, ap)
}

// Create books on behalf of a customer; it rides the same transaction as
// the self-service flow.
func (h *CitaHandler) Create(c *gin.Context) {
	var req CreateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		CustomerUserID: req.ClienteUserID,
		StaffID:        req.EmpleadoID,
		Services:       req.Servicios,
		Date:           req.Fecha,
		Time:           req.Horario,
		Notes:          req.Notas,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

func (h *CitaHandler) Update(c *gin.Context) {
	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	var req RescheduleCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), citaID, req.Fecha, req.Horario)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATE MACHINE
// ======================================================

func (h *CitaHandler) ChangeEstado(c *gin.Context) {
	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	var req ChangeEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), citaID, domain.Status(req.Estado))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// Delete never removes the row: a cita only transitions to cancelada.
func (h *CitaHandler) Delete(c *gin.Context) {
	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	ap, err := h.changeStatus.Execute(c.Request.Context(), citaID, domain.StatusCancelada)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// REPORTING
// ======================================================

func (h *CitaHandler) Stats(c *gin.Context) {
	desdeStr := c.Query("desde")
	hastaStr := c.Query("hasta")
	if desdeStr == "" || hastaStr == "" {
		httperr.BadRequest(c, "missing_params", "desde y hasta son obligatorios.")
		return
	}

	desde, err := parseDateIn(h.tz, desdeStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_desde", "Fecha inválida.")
		return
	}
	hasta, err := parseDateIn(h.tz, hastaStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_hasta", "Fecha inválida.")
		return
	}

	// hasta is inclusive from the caller's point of view.
	stats, err := h.stats.Execute(c.Request.Context(), desde, hasta.AddDate(0, 0, 1))
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, stats)
}

// ======================================================
// PAYMENTS
// ======================================================

func (h *CitaHandler) UpdatePago(c *gin.Context) {
	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	var req UpdatePagoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	p, err := h.updatePayment.Execute(c.Request.Context(), citaID, ucAppointment.UpdatePaymentInput{
		Status:        req.Estado,
		Method:        req.Metodo,
		Paid:          req.Pagado,
		Tax:           req.Impuesto,
		Tip:           req.Propina,
		InvoiceIssued: req.FacturaEmitida,
		Override:      req.Override,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, p)
}

func (h *CitaHandler) CreateCheckout(c *gin.Context) {
	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	checkout, err := h.checkout.Execute(c.Request.Context(), citaID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	httpresp.OK(c, checkout)
}
