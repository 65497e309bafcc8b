package handler

import (
	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

// --- Request / Response types ---
//
// The dashboard payload keys are camelCase because the frontend consumes
// them directly; the rest of the API keeps snake_case.

type statsBlock struct {
	TotalRevenue      string  `json:"totalRevenue"`
	TotalAppointments int64   `json:"totalAppointments"`
	ActiveClients     int64   `json:"activeClients"`
	TodayAppointments int64   `json:"todayAppointments"`
	Growth            float64 `json:"growth"`
}

type statsResponse struct {
	Stats              statsBlock            `json:"stats"`
	RecentAppointments []appointmentResponse `json:"recentAppointments"`
}

type revenuePointResponse struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type staffUtilizationResponse struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Value int    `json:"value"`
}

type appointmentResponse struct {
	ID         string  `json:"id"`
	ClientName string  `json:"clientName"`
	Service    string  `json:"service"`
	Specialist string  `json:"specialist,omitempty"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Status     string  `json:"status"`
	Price      float64 `json:"price"`
	Notes      string  `json:"notes,omitempty"`
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed in_progress completed cancelled"`
}

type serviceResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Category    string  `json:"category"`
	Duration    int     `json:"duration"`
	Price       float64 `json:"price"`
	Image       string  `json:"image,omitempty"`
	IsActive    bool    `json:"isActive"`
}

func toAppointmentResponse(a *domain.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:         a.ID,
		ClientName: a.ClientName,
		Service:    a.Service,
		Specialist: a.Specialist,
		Date:       a.Date.Format("2006-01-02"),
		Time:       a.Time,
		Status:     string(a.Status),
		Price:      a.Price,
		Notes:      a.Notes,
	}
}

func toAppointmentResponses(items []*domain.Appointment) []appointmentResponse {
	out := make([]appointmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAppointmentResponse(a))
	}
	return out
}

func toStatsResponse(result *ports.StatsResult) statsResponse {
	return statsResponse{
		Stats: statsBlock{
			TotalRevenue:      result.Stats.TotalRevenue,
			TotalAppointments: result.Stats.TotalAppointments,
			ActiveClients:     result.Stats.ActiveClients,
			TodayAppointments: result.Stats.TodayAppointments,
			Growth:            result.Stats.Growth,
		},
		RecentAppointments: toAppointmentResponses(result.Recent),
	}
}

func toServiceResponses(items []*domain.Service) []serviceResponse {
	out := make([]serviceResponse, 0, len(items))
	for _, s := range items {
		out = append(out, serviceResponse{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Category:    string(s.Category),
			Duration:    s.DurationMin,
			Price:       s.Price,
			Image:       s.Image,
			IsActive:    s.IsActive,
		})
	}
	return out
}
