package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/middleware"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/usecase"
)

// AdminHandler serves /api/admin.
type AdminHandler struct {
	svc AdminService
	log *logger.Logger
}

func NewAdminHandler(svc AdminService, log *logger.Logger) *AdminHandler {
	return &AdminHandler{svc: svc, log: log.Named("AdminHandler")}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in usecase.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, h.log, err)
		return
	}

	res, err := h.svc.Register(r.Context(), in)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusCreated, "Admin registered successfully", res)
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.log, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Login successful", res)
}

func (h *AdminHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		response.Error(w, h.log, domain.ErrUnauthorized)
		return
	}

	profile, err := h.svc.GetProfile(r.Context(), admin.ID)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "", profile)
}

func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	admin, ok := middleware.AdminFromContext(r.Context())
	if !ok {
		response.Error(w, h.log, domain.ErrUnauthorized)
		return
	}

	var patch usecase.ProfilePatch
	if err := decodeJSON(w, r, &patch); err != nil {
		response.Error(w, h.log, err)
		return
	}

	res, err := h.svc.UpdateProfile(r.Context(), admin.ID, patch)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Profile updated successfully", res)
}
