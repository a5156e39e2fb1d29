package api

import (
	"context"

	"github.com/hackgods/clinic-availability/internal/booking"
	"github.com/hackgods/clinic-availability/internal/schedule"
)

type ScheduleService interface {
	GetSchedule(ctx context.Context, date string) ([]schedule.DoctorSchedule, error)
	UpdateSlotStatus(ctx context.Context, u schedule.SlotUpdate) error
}

type BookingService interface {
	Create(ctx context.Context, req booking.Request) (booking.Result, error)
}

type MessageResponse struct {
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
