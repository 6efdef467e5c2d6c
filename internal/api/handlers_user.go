package api

import (
	"encoding/json"
	"net/http"

	"github.com/dreamshare/dreams-backend/internal/api/respond"
	"github.com/dreamshare/dreams-backend/internal/api/validate"
	"github.com/dreamshare/dreams-backend/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// GetUsers GET /users
func (h *UserHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Signup POST /users/signup
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "invalid inputs, please check your data")
		return
	}
	if err := validate.Signup(in.Name, in.Email, in.Password); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	sess, err := h.svc.Signup(r.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// Login POST /users/login
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteError(w, http.StatusUnprocessableEntity, "invalid inputs, please check your data")
		return
	}
	if err := validate.Login(in.Email, in.Password); err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	sess, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		respond.WriteDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}
