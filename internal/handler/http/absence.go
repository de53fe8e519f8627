package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/absence"
	"github.com/atlas-rh/pointage-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AbsenceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type AbsenceHandlerImpl struct {
	absenceService absence.AbsenceService
}

func NewAbsenceHandler(absenceService absence.AbsenceService) AbsenceHandler {
	return &AbsenceHandlerImpl{absenceService: absenceService}
}

// Create implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq absence.CreateAbsenceRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create absence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := createReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	created, err := h.absenceService.CreateAbsence(r.Context(), createReq)
	if err != nil {
		slog.Error("Create absence service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence request created", created)
}

// List implements AbsenceHandler.
func (h *AbsenceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := absence.AbsenceFilter{
		UserID: optionalQuery(r, "user_id"),
	}
	if v := r.URL.Query().Get("statut"); v != "" {
		statut := absence.RequestStatus(v)
		filter.Statut = &statut
	}
	if v := r.URL.Query().Get("type"); v != "" {
		absenceType := absence.Type(v)
		filter.Type = &absenceType
	}

	list, err := h.absenceService.ListAbsences(r.Context(), filter)
	if err != nil {
		slog.Error("List absences service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, list)
}

// GetByID implements AbsenceHandler.
func (h *AbsenceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	found, err := h.absenceService.GetAbsence(r.Context(), id)
	if err != nil {
		slog.Error("Get absence service error", "error", err, "absence_id", id)
		response.HandleError(w, err)
		return
	}

	response.Success(w, found)
}

// Approve implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	approved, err := h.absenceService.ApproveAbsence(r.Context(), id)
	if err != nil {
		slog.Error("Approve absence service error", "error", err, "absence_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request approved", approved)
}

// Reject implements AbsenceHandler.
func (h *AbsenceHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rejected, err := h.absenceService.RejectAbsence(r.Context(), id)
	if err != nil {
		slog.Error("Reject absence service error", "error", err, "absence_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence request rejected", rejected)
}
