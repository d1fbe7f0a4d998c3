package rest

import (
	"fmt"
	"net/http"

)

type saveToBoardRequest struct {
	Board string `json:"board"`
}

func (h *Handler) ListFeed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.Feed.List(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, posts)
}

func (h *Handler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Feed.ToggleLike(r.Context(), pathParam(r, "id"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

func (h *Handler) SavePost(w http.ResponseWriter, r *http.Request) {
	var req saveToBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if err := h.svc.Feed.Save(r.Context(), pathParam(r, "id"), req.Board); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, fmt.Sprintf("Saved to %s", req.Board), nil)
}

func (h *Handler) UnsavePost(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Feed.Unsave(r.Context(), pathParam(r, "id")); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, "Removed from saved", nil)
}
