package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dreamshare/dreams-backend/internal/api/respond"
	"github.com/dreamshare/dreams-backend/internal/api/validate"
	"github.com/dreamshare/dreams-backend/internal/auth"
	"github.com/dreamshare/dreams-backend/internal/services"
)

type DreamHandler struct {
	svc *services.DreamService
}

func NewDreamHandler(svc *services.DreamService) *DreamHandler { return &DreamHandler{svc: svc} }

type dreamInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// GetDreamByID GET /dreams/{dreamId}
func (h *DreamHandler) GetDreamByID(w http.ResponseWriter, r *http.Request) {
	dreamID := mux.Vars(r)["dreamId"]
	d, err := h.svc.Get(r.Context(), dreamID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"dream": d})
}

// GetDreamsByUser GET /dreams/user/{userId}
func (h *DreamHandler) GetDreamsByUser(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	dreams, err := h.svc.ListByOwner(r.Context(), userID)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"dreams": dreams})
}

// CreateDream POST /dreams (auth required)
func (h *DreamHandler) CreateDream(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.FromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "authentication failed")
		return
	}
	var in dreamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "invalid inputs, please check your data")
		return
	}
	if err := validate.Dream(in.Title, in.Description); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	d, err := h.svc.Create(r.Context(), caller.UserID, in.Title, in.Description)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"dream": d})
}

// UpdateDream PATCH /dreams/{dreamId} (auth required)
func (h *DreamHandler) UpdateDream(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.FromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "authentication failed")
		return
	}
	dreamID := mux.Vars(r)["dreamId"]
	var in dreamInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "invalid inputs, please check your data")
		return
	}
	if err := validate.Dream(in.Title, in.Description); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	d, err := h.svc.Update(r.Context(), caller.UserID, dreamID, in.Title, in.Description)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"dream": d})
}

// DeleteDream DELETE /dreams/{dreamId} (auth required)
func (h *DreamHandler) DeleteDream(w http.ResponseWriter, r *http.Request) {
	caller, ok := auth.FromContext(r.Context())
	if !ok {
		respond.WriteError(w, http.StatusUnauthorized, "authentication failed")
		return
	}
	dreamID := mux.Vars(r)["dreamId"]
	if err := h.svc.Delete(r.Context(), caller.UserID, dreamID); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": "deleted dream"})
}
