package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
)

type addCartItemRequest struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
}

type updateQuantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.svc.Cart.GetCart(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cart.Clear(r.Context()); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, "Cart cleared", nil)
}

func (h *Handler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var req addCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if req.ProductID == "" {
		handleServiceError(w, entity.NewValidationError("productId", "product id is required"), h.log)
		return
	}
	line, err := h.svc.Cart.AddItem(r.Context(), req.ProductID, req.Size)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusCreated, fmt.Sprintf("%s added to cart", line.Product.Caption), line)
}

func (h *Handler) UpdateCartQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	line, err := h.svc.Cart.UpdateQuantity(r.Context(), pathParam(r, "id"), r.URL.Query().Get("size"), req.Delta)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, line)
}

func (h *Handler) ToggleCartItem(w http.ResponseWriter, r *http.Request) {
	line, err := h.svc.Cart.ToggleSelection(r.Context(), pathParam(r, "id"), r.URL.Query().Get("size"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, line)
}

func (h *Handler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Cart.RemoveItem(r.Context(), pathParam(r, "id"), r.URL.Query().Get("size")); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, "Item removed from cart", nil)
}

func (h *Handler) CartTotal(w http.ResponseWriter, r *http.Request) {
	pickup, _ := strconv.ParseBool(r.URL.Query().Get("pickup"))
	total, err := h.svc.Cart.Total(r.Context(), pickup)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, total)
}

func (h *Handler) CartItemCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Cart.ItemCount(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]int{"count": n})
}
