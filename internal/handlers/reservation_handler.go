package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/estilobarber/barberia-api/internal/httperr"
	"github.com/estilobarber/barberia-api/internal/httpresp"
	"github.com/estilobarber/barberia-api/internal/middleware"
	"github.com/estilobarber/barberia-api/internal/timezone"
	ucAppointment "github.com/estilobarber/barberia-api/internal/usecase/appointment"
	ucCatalog "github.com/estilobarber/barberia-api/internal/usecase/catalog"
)

// ======================================================
// HANDLER
// ======================================================

// ReservationHandler is the customer-facing booking flow: browse the
// catalog, pick a slot, book, follow up.
type ReservationHandler struct {
	catalog      *ucCatalog.Reader
	availability *ucAppointment.GetAvailability
	book         *ucAppointment.Book
	listMine     *ucAppointment.ListMyCitas
	cancelOwn    *ucAppointment.CancelOwn
	tz           string
}

func NewReservationHandler(
	catalog *ucCatalog.Reader,
	availability *ucAppointment.GetAvailability,
	book *ucAppointment.Book,
	listMine *ucAppointment.ListMyCitas,
	cancelOwn *ucAppointment.CancelOwn,
	tz string,
) *ReservationHandler {
	return &ReservationHandler{
		catalog:      catalog,
		availability: availability,
		book:         book,
		listMine:     listMine,
		cancelOwn:    cancelOwn,
		tz:           tz,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ProcessReservationRequest struct {
	EmpleadoID uint                             `json:"empleadoId" binding:"required"`
	Servicios  []ucAppointment.BookServiceInput `json:"servicios" binding:"required"`
	Fecha      string                           `json:"fecha" binding:"required"`   // YYYY-MM-DD
	Horario    string                           `json:"horario" binding:"required"` // HH:mm
	Total      float64                          `json:"total"`
	Notas      string                           `json:"notas"`
}

// ======================================================
// CATALOG
// ======================================================

func (h *ReservationHandler) ListServices(c *gin.Context) {
	services, err := h.catalog.ListBookableServices(c.Request.Context())
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, services)
}

func (h *ReservationHandler) ListStaff(c *gin.Context) {
	raw := c.Query("servicios")
	if raw == "" {
		httperr.BadRequest(c, "missing_servicios", "Parámetro servicios obligatorio.")
		return
	}

	ids, ok := parseIDList(raw)
	if !ok {
		httperr.BadRequest(c, "invalid_servicios", "Parámetro servicios inválido.")
		return
	}

	staff, err := h.catalog.ListStaffForServices(c.Request.Context(), ids)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, staff)
}

// ======================================================
// AVAILABILITY
// ======================================================

func (h *ReservationHandler) ListSlots(c *gin.Context) {
	staffIDStr := c.Query("empleadoId")
	dateStr := c.Query("fecha")
	serviciosStr := c.Query("servicios")

	if staffIDStr == "" || dateStr == "" || serviciosStr == "" {
		httperr.BadRequest(c, "missing_params", "empleadoId, fecha y servicios son obligatorios.")
		return
	}

	staffID, ok := parseUintParam(staffIDStr)
	if !ok {
		httperr.BadRequest(c, "invalid_empleado_id", "Empleado inválido.")
		return
	}

	ids, ok := parseIDList(serviciosStr)
	if !ok {
		httperr.BadRequest(c, "invalid_servicios", "Parámetro servicios inválido.")
		return
	}

	date, err := parseDateIn(h.tz, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_fecha", "Fecha inválida.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), ucAppointment.AvailabilityQuery{
		StaffID:    staffID,
		ServiceIDs: ids,
		Date:       date,
		Now:        timezone.NowIn(h.tz),
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	horarios := make([]string, 0, len(slots))
	for _, s := range slots {
		horarios = append(horarios, s.Start.Format("15:04"))
	}

	c.JSON(http.StatusOK, horarios)
}

// ======================================================
// BOOKING
// ======================================================

func (h *ReservationHandler) Process(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ProcessReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		CustomerUserID: userID,
		StaffID:        req.EmpleadoID,
		Services:       req.Servicios,
		Date:           req.Fecha,
		Time:           req.Horario,
		ClientTotal:    req.Total,
		Notes:          req.Notas,
	})
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"citaId":     ap.ID,
		"fecha":      ap.StartTime.Format("2006-01-02"),
		"horaInicio": ap.StartTime.Format("15:04"),
		"horaFin":    ap.EndTime.Format("15:04"),
		"total":      ap.Payment.Total,
	})
}

// ======================================================
// MY CITAS
// ======================================================

func (h *ReservationHandler) MyCitas(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	citas, err := h.listMine.Execute(c.Request.Context(), userID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}
	httpresp.List(c, citas)
}

func (h *ReservationHandler) CancelMine(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	citaID, ok := parseUintParam(c.Param("id"))
	if !ok {
		httperr.NotFound(c, "cita_not_found", "Cita no encontrada.")
		return
	}

	ap, err := h.cancelOwn.Execute(c.Request.Context(), userID, citaID)
	if err != nil {
		httperr.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}
