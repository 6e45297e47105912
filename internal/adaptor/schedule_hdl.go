package adaptor

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// defaultSlotWindow is used when the caller omits the "to" query parameter.
const defaultSlotWindow = 7 * 24 * time.Hour

type ScheduleHandler struct {
	service usecase.ScheduleService
	log     *zap.Logger
}

func NewScheduleHandler(service usecase.ScheduleService, log *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		service: service,
		log:     log.With(zap.String("handler", "schedule")),
	}
}

// GetAvailableSlots handles GET /api/teachers/{id}/slots (public)
func (h *ScheduleHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "id")
	if teacherID == "" {
		utils.ResponseBadRequest(w, "Teacher ID is required", nil)
		return
	}

	from, to, err := parseWindow(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	slots, err := h.service.GetAvailableSlots(r.Context(), teacherID, from, to)
	if err != nil {
		h.handleServiceError(w, err, "get available slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// GetTeacherLessons handles GET /api/teachers/{id}/lessons (public)
func (h *ScheduleHandler) GetTeacherLessons(w http.ResponseWriter, r *http.Request) {
	teacherID := chi.URLParam(r, "id")
	if teacherID == "" {
		utils.ResponseBadRequest(w, "Teacher ID is required", nil)
		return
	}

	from, to, err := parseWindow(r)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	lessons, err := h.service.GetTeacherLessons(r.Context(), teacherID, from, to)
	if err != nil {
		h.handleServiceError(w, err, "get teacher lessons")
		return
	}

	utils.ResponseSuccess(w, "success", lessons)
}

// parseWindow reads the optional "from" and "to" RFC3339 query parameters.
// Missing values default to now and now plus one week.
func parseWindow(r *http.Request) (time.Time, time.Time, error) {
	query := r.URL.Query()

	from := time.Now().UTC()
	if raw := query.Get("from"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'from' parameter, expected RFC3339 timestamp")
		}
		from = parsed
	}

	to := from.Add(defaultSlotWindow)
	if raw := query.Get("to"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.New("invalid 'to' parameter, expected RFC3339 timestamp")
		}
		to = parsed
	}

	return from, to, nil
}

// handleServiceError maps service errors to HTTP responses
func (h *ScheduleHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidInterval),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
