package handler

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/go-chi/chi/v5"
)

// EnquiryHandler serves /api/enquiries.
type EnquiryHandler struct {
	svc EnquiryService
	log *logger.Logger
}

func NewEnquiryHandler(svc EnquiryService, log *logger.Logger) *EnquiryHandler {
	return &EnquiryHandler{svc: svc, log: log.Named("EnquiryHandler")}
}

func (h *EnquiryHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var in domain.EnquiryInput
	if err := decodeJSON(w, r, &in); err != nil {
		response.Error(w, h.log, err)
		return
	}

	e, err := h.svc.Submit(r.Context(), in)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusCreated, "Enquiry submitted successfully. We will contact you soon!", e)
}

func (h *EnquiryHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.svc.List(r.Context(), q.Get("status"), domain.ParsePagination(q.Get("page"), q.Get("limit")))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.Paginated(w, page)
}

func (h *EnquiryHandler) ListByProperty(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.svc.ListByProperty(r.Context(), chi.URLParam(r, "propertyId"), domain.ParsePagination(q.Get("page"), q.Get("limit")))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.Paginated(w, page)
}

func (h *EnquiryHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "", e)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *EnquiryHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		response.Error(w, h.log, err)
		return
	}

	e, err := h.svc.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Enquiry status updated successfully", e)
}

func (h *EnquiryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Enquiry deleted successfully", map[string]string{"id": id})
}

func (h *EnquiryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "", stats)
}
