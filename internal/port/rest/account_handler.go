package rest

import (
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
)

type logInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	var in entity.SignUpInput
	if err := decodeJSON(r, &in); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	profile, err := h.svc.Account.SignUp(r.Context(), in)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusCreated, "Sign up successful", profile)
}

func (h *Handler) LogIn(w http.ResponseWriter, r *http.Request) {
	var req logInRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	profile, err := h.svc.Account.LogIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, fmt.Sprintf("Welcome back, %s", profile.Name), profile)
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.Account.Settings(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var in entity.Settings
	if err := decodeJSON(r, &in); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	settings, err := h.svc.Account.UpdateSettings(r.Context(), in)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, "Settings saved", settings)
}
