package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/service"
)

type noticeResponse struct {
	Notice string      `json:"notice"`
	Data   interface{} `json:"data,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondWithNotice(w http.ResponseWriter, code int, notice string, data interface{}) {
	respondWithJSON(w, code, noticeResponse{Notice: notice, Data: data})
}

// HTTPStatus maps a service error onto the response code shown to the client.
func HTTPStatus(err error) int {
	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrNoUser),
		errors.Is(err, entity.ErrNotFound),
		errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entity.ErrDuplicate):
		return http.StatusConflict
	case repository.IsStorageFailure(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func handleServiceError(w http.ResponseWriter, err error, log logger.Logger) {
	code := HTTPStatus(err)
	resp := errorResponse{Error: err.Error()}

	var verr *entity.ValidationError
	switch {
	case errors.As(err, &verr):
		resp = errorResponse{Error: verr.Reason, Field: verr.Field}
	case code == http.StatusServiceUnavailable:
		log.Errorf("Storage failure: %v", err)
		resp.Error = "Something went wrong saving your changes. Please try again."
	case code == http.StatusInternalServerError:
		log.Errorf("Unhandled error: %v", err)
		resp.Error = "Internal server error"
	default:
		log.Debugf("Request rejected with %d: %v", code, err)
	}
	respondWithJSON(w, code, resp)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return entity.NewValidationError("body", fmt.Sprintf("invalid request body: %v", err))
	}
	return nil
}
