package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

type ServiceDTO struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	PriceType   PriceType       `json:"priceType"`
	FixedPrice  decimal.Decimal `json:"fixedPrice,omitempty"`
	HourlyRate  decimal.Decimal `json:"hourlyRate,omitempty"`
}

type Handler struct {
	catalogService CatalogService
}

func NewHandler(catalogService CatalogService) *Handler {
	return &Handler{catalogService}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Registering new catalog service")
	w.Header().Set("Content-Type", "application/json")

	var dto ServiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	created, err := h.catalogService.Create(r.Context(), dtoToService(dto))
	if err != nil {
		if errors.Is(err, ErrServiceInvalid) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid service data", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(serviceToDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	services, err := h.catalogService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ServiceDTO, 0, len(services))
	for _, service := range services {
		dtos = append(dtos, serviceToDTO(service))
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	serviceId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var dto ServiceDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	if dto.ID == 0 || dto.ID != int(serviceId) {
		rest.WriteError(w, http.StatusBadRequest, "Invalid service id in request body", "")
		return
	}

	ok, err := h.catalogService.Update(r.Context(), dtoToService(dto))
	if err != nil && !errors.Is(err, ErrServiceNotFound) {
		if errors.Is(err, ErrServiceInvalid) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid service data", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Service not found", "")
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dto); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	serviceId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.catalogService.Delete(r.Context(), int(serviceId))
	if err != nil && !errors.Is(err, ErrServiceNotFound) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Service not found", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func serviceToDTO(service Service) ServiceDTO {
	return ServiceDTO{
		ID:          service.ID,
		Name:        service.Name,
		Description: service.Description,
		PriceType:   service.PriceType,
		FixedPrice:  service.FixedPrice,
		HourlyRate:  service.HourlyRate,
	}
}

func dtoToService(dto ServiceDTO) Service {
	return Service{
		ID:          dto.ID,
		Name:        dto.Name,
		Description: dto.Description,
		PriceType:   dto.PriceType,
		FixedPrice:  dto.FixedPrice,
		HourlyRate:  dto.HourlyRate,
	}
}
