package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/atlas-rh/pointage-backend-go/internal/domain/pointage"
	"github.com/atlas-rh/pointage-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PointageHandler interface {
	Journal(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	UpdateBatch(w http.ResponseWriter, r *http.Request)
	SaveAll(w http.ResponseWriter, r *http.Request)
	Valider(w http.ResponseWriter, r *http.Request)
	Invalider(w http.ResponseWriter, r *http.Request)
	ValiderTout(w http.ResponseWriter, r *http.Request)
	InvaliderTout(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
}

type PointageHandlerImpl struct {
	pointageService pointage.PointageService
}

func NewPointageHandler(pointageService pointage.PointageService) PointageHandler {
	return &PointageHandlerImpl{pointageService: pointageService}
}

// optionalQuery returns nil for an absent or empty query parameter.
func optionalQuery(r *http.Request, key string) *string {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func journalFilterFromQuery(r *http.Request) pointage.JournalFilter {
	return pointage.JournalFilter{
		Date:          r.URL.Query().Get("date"),
		SocieteID:     optionalQuery(r, "societe_id"),
		DepartementID: optionalQuery(r, "departement_id"),
		UserID:        optionalQuery(r, "user_id"),
	}
}

// Journal implements PointageHandler.
func (h *PointageHandlerImpl) Journal(w http.ResponseWriter, r *http.Request) {
	filter := journalFilterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	journal, err := h.pointageService.Journal(r.Context(), filter)
	if err != nil {
		slog.Error("Journal service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, journal)
}

// List implements PointageHandler.
func (h *PointageHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	filter := pointage.PointageFilter{
		Date:       optionalQuery(r, "date"),
		UserID:     optionalQuery(r, "user_id"),
		StatutJour: optionalQuery(r, "statut_jour"),
		SocieteID:  optionalQuery(r, "societe_id"),
		Page:       page,
		Limit:      limit,
	}

	list, err := h.pointageService.ListPointages(r.Context(), filter)
	if err != nil {
		slog.Error("List pointages service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Pointages, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalCount,
		TotalPages: list.TotalPages,
	})
}

// Save implements PointageHandler.
func (h *PointageHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	var saveReq pointage.SaveRequest

	if err := json.NewDecoder(r.Body).Decode(&saveReq); err != nil {
		slog.Error("Save decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := saveReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	saved, err := h.pointageService.Save(r.Context(), saveReq)
	if err != nil {
		slog.Error("Save service error", "error", err)
		response.HandleError(w, err)
		return
	}

	if saveReq.ID == nil {
		response.Created(w, "Pointage created", saved)
		return
	}
	response.SuccessWithMessage(w, "Pointage updated", saved)
}

// UpdateBatch implements PointageHandler.
func (h *PointageHandlerImpl) UpdateBatch(w http.ResponseWriter, r *http.Request) {
	var updateReqs []pointage.UpdateRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReqs); err != nil {
		slog.Error("UpdateBatch decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	updated, err := h.pointageService.UpdateBatch(r.Context(), updateReqs)
	if err != nil {
		slog.Error("UpdateBatch service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pointages updated", updated)
}

// SaveAll implements PointageHandler.
func (h *PointageHandlerImpl) SaveAll(w http.ResponseWriter, r *http.Request) {
	var saveAllReq pointage.SaveAllRequest

	if err := json.NewDecoder(r.Body).Decode(&saveAllReq); err != nil {
		slog.Error("SaveAll decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if saveAllReq.Date == "" {
		saveAllReq.JournalFilter = journalFilterFromQuery(r)
	}
	if err := saveAllReq.JournalFilter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.pointageService.SaveAll(r.Context(), saveAllReq)
	if err != nil {
		slog.Error("SaveAll service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Valider implements PointageHandler.
func (h *PointageHandlerImpl) Valider(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	validated, err := h.pointageService.Valider(r.Context(), id)
	if err != nil {
		slog.Error("Valider service error", "error", err, "pointage_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pointage validated", validated)
}

// Invalider implements PointageHandler.
func (h *PointageHandlerImpl) Invalider(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	invalidated, err := h.pointageService.Invalider(r.Context(), id)
	if err != nil {
		slog.Error("Invalider service error", "error", err, "pointage_id", id)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pointage invalidated", invalidated)
}

// ValiderTout implements PointageHandler.
func (h *PointageHandlerImpl) ValiderTout(w http.ResponseWriter, r *http.Request) {
	var bulkReq pointage.BulkTransitionRequest

	if err := json.NewDecoder(r.Body).Decode(&bulkReq); err != nil {
		slog.Error("ValiderTout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.pointageService.ValiderTout(r.Context(), bulkReq)
	if err != nil {
		slog.Error("ValiderTout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// InvaliderTout implements PointageHandler.
func (h *PointageHandlerImpl) InvaliderTout(w http.ResponseWriter, r *http.Request) {
	var bulkReq pointage.BulkTransitionRequest

	if err := json.NewDecoder(r.Body).Decode(&bulkReq); err != nil {
		slog.Error("InvaliderTout decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.pointageService.InvaliderTout(r.Context(), bulkReq)
	if err != nil {
		slog.Error("InvaliderTout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements PointageHandler.
func (h *PointageHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var deleteReq pointage.DeleteRequest

	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil {
		slog.Error("Delete decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := deleteReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.pointageService.Delete(r.Context(), deleteReq); err != nil {
		slog.Error("Delete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Pointages deleted", nil)
}

// Export implements PointageHandler.
func (h *PointageHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	filter := journalFilterFromQuery(r)
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	workbook, err := h.pointageService.ExportJournal(r.Context(), filter)
	if err != nil {
		slog.Error("Export service error", "error", err)
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("pointages-%s.xlsx", filter.Date)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(workbook)
}
