package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/service"
)

type quoteRequest struct {
	UsePickupPoint bool `json:"usePickupPoint"`
}

func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	total, err := h.svc.Checkout.Quote(r.Context(), req.UsePickupPoint)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, total)
}

func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req service.PlaceOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	order, err := h.svc.Checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusCreated, "Order placed successfully", order)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.svc.Checkout.ListOrders(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if orders == nil {
		orders = entity.Orders{}
	}
	respondWithJSON(w, http.StatusOK, orders)
}
