package service

import (
	"time"

	"github.com/glowdesk/booking-system/internal/core/domain"
	"github.com/glowdesk/booking-system/internal/core/ports"
)

// Fallback payloads served when the data store is unavailable. The values
// are representative but deliberately synthetic; every read view declares
// its fallback here so the degraded-mode policy lives in one place.

func fallbackStats() *ports.StatsResult {
	return &ports.StatsResult{
		Stats: ports.StatsSummary{
			TotalRevenue:      "12840.00",
			TotalAppointments: 156,
			ActiveClients:     842,
			TodayAppointments: 12,
			Growth:            12.5,
		},
		Recent: fallbackToday(),
	}
}

func fallbackRevenue() []ports.RevenuePoint {
	return []ports.RevenuePoint{
		{Name: "Mon", Revenue: 4000},
		{Name: "Tue", Revenue: 3000},
		{Name: "Wed", Revenue: 5000},
		{Name: "Thu", Revenue: 2780},
		{Name: "Fri", Revenue: 6890},
		{Name: "Sat", Revenue: 8390},
		{Name: "Sun", Revenue: 4490},
	}
}

func fallbackStaff() []ports.StaffUtilization {
	return []ports.StaffUtilization{
		{Name: "Sarah J.", Role: "Skin", Value: 85},
		{Name: "Michael C.", Role: "Massage", Value: 65},
		{Name: "Emma W.", Role: "Hair", Value: 92},
		{Name: "David L.", Role: "Nails", Value: 45},
	}
}

func fallbackToday() []*domain.Appointment {
	today := time.Now()
	return []*domain.Appointment{
		{
			ID:         "demo-1",
			ClientName: "Jessica Reed",
			Service:    "Luxury Facial",
			Time:       "10:30 AM",
			Status:     domain.StatusConfirmed,
			Specialist: "Sarah J.",
			Date:       today,
		},
		{
			ID:         "demo-2",
			ClientName: "Marcus Smith",
			Service:    "Deep Tissue",
			Time:       "12:00 PM",
			Status:     domain.StatusPending,
			Specialist: "Michael C.",
			Date:       today,
		},
		{
			ID:         "demo-3",
			ClientName: "Elena Gilbert",
			Service:    "Designer Haircut",
			Time:       "02:15 PM",
			Status:     domain.StatusInProgress,
			Specialist: "Emma W.",
			Date:       today,
		},
	}
}

func fallbackServices() []*domain.Service {
	return []*domain.Service{
		{ID: "demo-1", Name: "Luxury Facial", Category: domain.CategorySkin, DurationMin: 60, Price: 150, IsActive: true},
		{ID: "demo-2", Name: "Deep Tissue Massage", Category: domain.CategoryMassage, DurationMin: 90, Price: 120, IsActive: true},
		{ID: "demo-3", Name: "Designer Haircut", Category: domain.CategoryHair, DurationMin: 45, Price: 85, IsActive: true},
		{ID: "demo-4", Name: "Full Spa Package", Category: domain.CategorySpa, DurationMin: 180, Price: 350, IsActive: true},
	}
}
