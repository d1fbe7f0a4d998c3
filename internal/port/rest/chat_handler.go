package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/service"
)

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.svc.Chat.Threads(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if threads == nil {
		threads = []entity.ThreadSummary{}
	}
	respondWithJSON(w, http.StatusOK, threads)
}

func (h *Handler) GetThread(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.svc.Chat.Thread(r.Context(), pathParam(r, "username"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if msgs == nil {
		msgs = []entity.Message{}
	}
	respondWithJSON(w, http.StatusOK, msgs)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	var in service.SendMessageInput
	if err := decodeJSON(r, &in); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	msg, err := h.svc.Chat.Send(r.Context(), pathParam(r, "username"), in)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusCreated, msg)
}

func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	summary, err := h.svc.Reviews.List(r.Context(), pathParam(r, "id"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, summary)
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var in service.SubmitReviewInput
	if err := decodeJSON(r, &in); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	review, err := h.svc.Reviews.Submit(r.Context(), pathParam(r, "id"), in)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusCreated, "Thank you for your review", review)
}
