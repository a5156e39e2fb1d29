package api

import (
	"errors"
	"net/http"

	"github.com/hackgods/clinic-availability/internal/booking"
	redisclient "github.com/hackgods/clinic-availability/internal/redis"
	"github.com/hackgods/clinic-availability/internal/schedule"
	"github.com/hackgods/clinic-availability/internal/validation"
)

func createPatientHandler(svc BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req booking.Request
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		res, err := svc.Create(r.Context(), req)
		if err != nil {
			handleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: res.Message})
	}
}

func getScheduleHandler(svc ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		views, err := svc.GetSchedule(r.Context(), r.URL.Query().Get("date"))
		if err != nil {
			handleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, views)
	}
}

func updateScheduleHandler(svc ScheduleService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req schedule.SlotUpdate
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		if err := svc.UpdateSlotStatus(r.Context(), req); err != nil {
			handleError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, SuccessResponse{Success: true})
	}
}

func handleError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, "missing_required_fields", verr.Error())
	case errors.Is(err, validation.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, "invalid_date", err.Error())
	case errors.Is(err, schedule.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, "no_matching_record", err.Error())
	case errors.Is(err, redisclient.ErrLockNotAcquired):
		writeError(w, http.StatusServiceUnavailable, "seed_in_progress", "date is being prepared, please retry shortly")
	default:
		writeError(w, http.StatusInternalServerError, "db_error", err.Error())
	}
}
