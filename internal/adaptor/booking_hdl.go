package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"lesson-booking/internal/dto/request"
	"lesson-booking/internal/usecase"
	"lesson-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/lessons (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lesson, err := h.service.CreateBooking(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", lesson)
}

// GetLessonByID handles GET /api/lessons/{id} (protected)
func (h *BookingHandler) GetLessonByID(w http.ResponseWriter, r *http.Request) {
	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	lesson, err := h.service.GetLessonByID(r.Context(), lessonID)
	if err != nil {
		h.handleServiceError(w, err, "get lesson by ID")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// GetUserLessons handles GET /api/user/lessons (protected)
func (h *BookingHandler) GetUserLessons(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := &request.PaginatedRequest{
		Page:    1,
		PerPage: 10,
	}

	query := r.URL.Query()
	req.Page = utils.ParseInt(query.Get("page"), 1)
	req.PerPage = utils.ParseInt(query.Get("per_page"), 10)

	lessons, err := h.service.GetUserLessons(r.Context(), userID.String(), req)
	if err != nil {
		h.handleServiceError(w, err, "get user lessons")
		return
	}

	utils.ResponseSuccess(w, "success", lessons)
}

// ConfirmBooking handles POST /api/lessons/{id}/confirm (protected)
func (h *BookingHandler) ConfirmBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	lesson, err := h.service.ConfirmBooking(r.Context(), userID.String(), lessonID)
	if err != nil {
		h.handleServiceError(w, err, "confirm booking")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// UpdateSchedule handles PUT /api/lessons/{id} (protected)
func (h *BookingHandler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	var req request.UpdateLessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	lesson, err := h.service.UpdateSchedule(r.Context(), userID.String(), lessonID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update schedule")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// CancelBooking handles DELETE /api/lessons/{id} (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	lesson, err := h.service.CancelBooking(r.Context(), userID.String(), lessonID)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// CompleteBooking handles PUT /api/lessons/{id}/complete (protected)
func (h *BookingHandler) CompleteBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	lesson, err := h.service.CompleteBooking(r.Context(), userID.String(), lessonID)
	if err != nil {
		h.handleServiceError(w, err, "complete booking")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// AddParticipant handles POST /api/lessons/{id}/participants (protected)
func (h *BookingHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	lesson, err := h.service.AddParticipant(r.Context(), userID.String(), lessonID)
	if err != nil {
		h.handleServiceError(w, err, "add participant")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// RemoveParticipant handles DELETE /api/lessons/{id}/participants (protected)
func (h *BookingHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	lessonID := chi.URLParam(r, "id")
	if lessonID == "" {
		utils.ResponseBadRequest(w, "Lesson ID is required", nil)
		return
	}

	lesson, err := h.service.RemoveParticipant(r.Context(), userID.String(), lessonID)
	if err != nil {
		h.handleServiceError(w, err, "remove participant")
		return
	}

	utils.ResponseSuccess(w, "success", lesson)
}

// handleServiceError maps service errors to HTTP responses
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrSlotConflict):
		h.log.Warn(operation+" failed - slot conflict",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrUnauthorized):
		h.log.Warn(operation+" failed - unauthorized",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidTransition),
		errors.Is(err, usecase.ErrCapacityExceeded),
		errors.Is(err, usecase.ErrPaymentNotConfirmed):
		h.log.Warn(operation+" failed - invalid state",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnprocessable(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidInterval),
		errors.Is(err, usecase.ErrInsufficientNotice),
		errors.Is(err, usecase.ErrTooFarInAdvance),
		errors.Is(err, usecase.ErrOutsideBusinessHours):
		h.log.Warn(operation+" failed - policy violation",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrValidation),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
