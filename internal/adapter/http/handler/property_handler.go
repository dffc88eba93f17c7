package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/property-service/internal/adapter/http/response"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/property-service/internal/property/domain"
	"github.com/go-chi/chi/v5"
)

// PropertyHandler serves /api/properties.
type PropertyHandler struct {
	svc          PropertyService
	maxFileBytes int64
	log          *logger.Logger
}

func NewPropertyHandler(svc PropertyService, maxFileBytes int64, log *logger.Logger) *PropertyHandler {
	return &PropertyHandler{svc: svc, maxFileBytes: maxFileBytes, log: log.Named("PropertyHandler")}
}

func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.svc.List(r.Context(), domain.ParsePagination(q.Get("page"), q.Get("limit")))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.Paginated(w, page)
}

func (h *PropertyHandler) Filter(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := domain.FilterQuery{
		City:     q.Get("city"),
		MinPrice: q.Get("minPrice"),
		MaxPrice: q.Get("maxPrice"),
		BHK:      q.Get("bhk"),
		Sort:     q.Get("sort"),
		Page:     q.Get("page"),
		Limit:    q.Get("limit"),
	}.ToFilter()
	if err != nil {
		response.Error(w, h.log, err)
		return
	}

	page, err := h.svc.Filter(r.Context(), f)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.Paginated(w, page)
}

func (h *PropertyHandler) Cities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.svc.Cities(r.Context())
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	count := len(cities)
	response.JSON(w, http.StatusOK, response.Envelope{Success: true, Count: &count, Data: cities})
}

func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "", p)
}

func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := readPropertyRequest(w, r, h.maxFileBytes)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	defer req.Close()

	p, err := h.svc.Create(r.Context(), req.input, req.images, req.video)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusCreated, "Property created successfully", p)
}

func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	req, err := readPropertyRequest(w, r, h.maxFileBytes)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	defer req.Close()

	p, err := h.svc.Update(r.Context(), id, req.input, req.images, req.video)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Property updated successfully", p)
}

func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Property deleted successfully", nil)
}

func (h *PropertyHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "imageIndex"))
	if err != nil {
		response.Error(w, h.log, fmt.Errorf("%w: invalid image index", domain.ErrValidation))
		return
	}

	p, err := h.svc.DeleteImageAt(r.Context(), chi.URLParam(r, "id"), index)
	if err != nil {
		response.Error(w, h.log, err)
		return
	}
	response.OK(w, http.StatusOK, "Image deleted successfully", p)
}
