package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

// DashboardHandler exposes the aggregated business views. Every read
// endpoint here answers 200 even when the store is degraded; the service
// layer substitutes fallback payloads in that case.
type DashboardHandler struct {
	service ports.DashboardService
}

func NewDashboardHandler(service ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Stats returns the headline numbers plus the most recent appointments.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  statsResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	result, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toStatsResponse(result))
}

// Revenue returns the daily revenue chart for the requested period.
//
// @Summary      Revenue chart
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        period  query     int  false  "Number of days (default 7, max 90)"
// @Success      200     {array}   revenuePointResponse
// @Failure      401     {object}  map[string]string
// @Router       /dashboard/revenue [get]
func (h *DashboardHandler) Revenue(c echo.Context) error {
	days := 0
	if raw := c.QueryParam("period"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "period must be an integer"})
		}
		days = parsed
	}

	points, err := h.service.Revenue(c.Request().Context(), days)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	out := make([]revenuePointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, revenuePointResponse{Name: p.Name, Revenue: p.Revenue})
	}
	return c.JSON(http.StatusOK, out)
}

// Staff returns per-specialist utilization.
//
// @Summary      Staff utilization
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   staffUtilizationResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/staff [get]
func (h *DashboardHandler) Staff(c echo.Context) error {
	staff, err := h.service.Staff(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	out := make([]staffUtilizationResponse, 0, len(staff))
	for _, s := range staff {
		out = append(out, staffUtilizationResponse{Name: s.Name, Role: s.Role, Value: s.Value})
	}
	return c.JSON(http.StatusOK, out)
}

// Today returns the appointments scheduled for the current business day.
//
// @Summary      Today's appointments
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   appointmentResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/appointments/today [get]
func (h *DashboardHandler) Today(c echo.Context) error {
	items, err := h.service.TodayAppointments(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toAppointmentResponses(items))
}

// UpdateStatus patches an appointment's status. Unlike the read views this
// is a real write: an unknown id is a hard 404, never a fallback.
//
// @Summary      Update appointment status
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true  "Appointment id"
// @Param        body  body      updateStatusRequest  true  "New status"
// @Success      200   {object}  appointmentResponse
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /dashboard/appointments/{id} [patch]
func (h *DashboardHandler) UpdateStatus(c echo.Context) error {
	userID, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	}

	updated, err := h.service.UpdateAppointmentStatus(
		c.Request().Context(),
		c.Param("id"),
		domain.AppointmentStatus(req.Status),
		userID,
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAppointmentNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{"error": "appointment not found"})
		case errors.Is(err, domain.ErrInvalidStatus):
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}

	return c.JSON(http.StatusOK, toAppointmentResponse(updated))
}

// Services lists the active service catalog.
//
// @Summary      Active services
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   serviceResponse
// @Failure      401  {object}  map[string]string
// @Router       /dashboard/services [get]
func (h *DashboardHandler) Services(c echo.Context) error {
	items, err := h.service.Services(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
	return c.JSON(http.StatusOK, toServiceResponses(items))
}
