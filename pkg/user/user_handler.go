package user

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/eletroproposta/eletroproposta/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid      string  `json:"uid"`
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Company  string  `json:"company,omitempty"`
	Phone    string  `json:"phone,omitempty"`
	PhotoUrl string  `json:"photoUrl,omitempty"`
	Plan     PlanDTO `json:"plan"`
}

type PlanDTO struct {
	Name          string `json:"name"`
	PaymentStatus string `json:"paymentStatus"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Debug("Creating user")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}
	log.Tracef("Creating new user: %+v", dto)

	if len(dto.Uid) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "User uid is required", "")
		return
	}
	if len(dto.Name) == 0 {
		rest.WriteError(w, http.StatusBadRequest, "Name is required", "")
		return
	}

	createdUser, err := h.userService.CreateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		rest.WriteError(w, http.StatusInternalServerError, rest.TranslateDBError(err), "")
		return
	}
	log.Tracef("Created user: %+v", createdUser)

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(createdUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	current, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoUser) || errors.Is(err, ErrUserNotFound) {
			rest.WriteError(w, http.StatusForbidden, "User not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(current)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var dto UserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", "")
		return
	}

	updated, err := h.userService.UpdateUser(r.Context(), dtoToUser(dto))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			rest.WriteError(w, http.StatusNotFound, "User not found", "")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(userToDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (h *Handler) UploadPhoto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	log.Trace("Uploading user photo")

	// 3MB hard limit on the request body
	r.Body = http.MaxBytesReader(w, r.Body, 3<<20)
	err := r.ParseMultipartForm(3 << 20)
	if err != nil {
		log.Debugf("File is too large: %v", err)
		rest.WriteError(w, http.StatusBadRequest, "Image is too large",
			"Maximum size is 3MB. Please try again with a smaller image.")
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer file.Close()
	log.Debugf("Uploaded File: %+v", header.Filename)
	log.Debugf("File Size: %+v", header.Size)

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.userService.StoreUserPhoto(r.Context(), fileBytes); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *Handler) GetPhoto(w http.ResponseWriter, r *http.Request) {
	photo, err := h.userService.GetCurrentUserPhoto(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if photo == nil {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(photo); err != nil {
		log.Errorf("failed to write photo response: %v", err)
	}
}

func (h *Handler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := h.userService.DeleteUserPhoto(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:      user.Uid,
		Name:     user.Name,
		Email:    user.Email,
		Company:  user.Company,
		Phone:    user.Phone,
		PhotoUrl: user.PhotoUrl,
		Plan: PlanDTO{
			Name:          user.Plan.Name,
			PaymentStatus: user.Plan.PaymentStatus,
		},
	}
}

func dtoToUser(dto UserDTO) User {
	return User{
		Uid:      dto.Uid,
		Name:     dto.Name,
		Email:    dto.Email,
		Company:  dto.Company,
		Phone:    dto.Phone,
		PhotoUrl: dto.PhotoUrl,
		Plan: Plan{
			Name:          dto.Plan.Name,
			PaymentStatus: dto.Plan.PaymentStatus,
		},
	}
}
