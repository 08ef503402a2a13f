package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type CategoryDTO struct {
	ID   int          `json:"id"`
	Name string       `json:"name"`
	Type CategoryType `json:"type"`
}

type Handler struct {
	categoryService CategoryService
}

func NewHandler(categoryService CategoryService) *Handler {
	return &Handler{categoryService}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating new transaction category")
	w.Header().Set("Content-Type", "application/json")

	var dto CategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	created, err := h.categoryService.Create(r.Context(), Category{Name: dto.Name, Type: dto.Type})
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryInvalid):
			rest.WriteError(w, http.StatusBadRequest, "Invalid category data", err.Error())
		case errors.Is(err, ErrDuplicateCategory):
			rest.WriteError(w, http.StatusConflict, "A category with this name and type already exists", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(CategoryDTO{ID: created.ID, Name: created.Name, Type: created.Type}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) GetAll(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	categories, err := h.categoryService.GetAll(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]CategoryDTO, 0, len(categories))
	for _, category := range categories {
		dtos = append(dtos, CategoryDTO{ID: category.ID, Name: category.Name, Type: category.Type})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	vars := mux.Vars(r)
	categoryId, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ok, err := h.categoryService.Delete(r.Context(), int(categoryId))
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryInUse):
			rest.WriteError(w, http.StatusConflict, "This category cannot be deleted",
				"There are transactions using this category. Move or delete them first.")
		case errors.Is(err, ErrCategoryNotFound):
			rest.WriteError(w, http.StatusNotFound, "Category not found", "")
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	if !ok {
		rest.WriteError(w, http.StatusNotFound, "Category not found", "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
