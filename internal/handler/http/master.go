package http

import (
	"log/slog"
	"net/http"

	"github.com/atlas-rh/pointage-backend-go/internal/handler/http/response"
	"github.com/atlas-rh/pointage-backend-go/internal/service/master"
)

type MasterHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	ListDepartements(w http.ResponseWriter, r *http.Request)
	ListSocietes(w http.ResponseWriter, r *http.Request)
}

type MasterHandlerImpl struct {
	masterService master.MasterService
}

func NewMasterHandler(masterService master.MasterService) MasterHandler {
	return &MasterHandlerImpl{masterService: masterService}
}

// ListUsers implements MasterHandler.
func (h *MasterHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.masterService.ListUsers(r.Context())
	if err != nil {
		slog.Error("List users service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, users)
}

// ListDepartements implements MasterHandler.
func (h *MasterHandlerImpl) ListDepartements(w http.ResponseWriter, r *http.Request) {
	departements, err := h.masterService.ListDepartements(r.Context())
	if err != nil {
		slog.Error("List departements service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, departements)
}

// ListSocietes implements MasterHandler.
func (h *MasterHandlerImpl) ListSocietes(w http.ResponseWriter, r *http.Request) {
	societes, err := h.masterService.ListSocietes(r.Context())
	if err != nil {
		slog.Error("List societes service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Success(w, societes)
}
