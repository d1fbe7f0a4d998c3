package rest

import (
	"fmt"
	"net/http"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
)

type productRequest struct {
	ProductID string `json:"productId"`
}

type createCollectionRequest struct {
	Name      string `json:"name"`
	ProductID string `json:"productId,omitempty"`
}

func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := h.svc.Favorites.List(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if favs == nil {
		favs = entity.Favorites{}
	}
	respondWithJSON(w, http.StatusOK, favs)
}

func (h *Handler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	p, err := h.svc.Favorites.Add(r.Context(), req.ProductID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusCreated, fmt.Sprintf("%s added to Favorites", p.Caption), p)
}

func (h *Handler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Favorites.Remove(r.Context(), pathParam(r, "id")); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, "Removed from Favorites", nil)
}

func (h *Handler) ListCollections(w http.ResponseWriter, r *http.Request) {
	cols, err := h.svc.Collections.List(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	if cols == nil {
		cols = entity.Collections{}
	}
	respondWithJSON(w, http.StatusOK, cols)
}

func (h *Handler) GetCollection(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Collections.Get(r.Context(), pathParam(r, "name"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, c)
}

func (h *Handler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	c, err := h.svc.Collections.Create(r.Context(), req.Name, req.ProductID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusCreated, fmt.Sprintf("Collection %s created", c.Name), c)
}

func (h *Handler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Collections.Delete(r.Context(), pathParam(r, "name")); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, "Collection deleted", nil)
}

func (h *Handler) AddCollectionItem(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeJSON(r, &req); err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	c, err := h.svc.Collections.AddItem(r.Context(), pathParam(r, "name"), req.ProductID)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, fmt.Sprintf("Added to %s", c.Name), c)
}

func (h *Handler) RemoveCollectionItem(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Collections.RemoveItem(r.Context(), pathParam(r, "name"), pathParam(r, "id"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithNotice(w, http.StatusOK, fmt.Sprintf("Removed from %s", c.Name), c)
}
