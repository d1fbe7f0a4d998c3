package rest

import (
	"net/http"
	"net/url"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/service"
	"github.com/go-chi/chi/v5"
)

// Services bundles the use cases exposed over HTTP.
type Services struct {
	Cart        service.CartService
	Favorites   service.FavoritesService
	Collections service.CollectionService
	Chat        service.ChatService
	Reviews     service.ReviewService
	Account     service.AccountService
	Checkout    service.CheckoutService
	Search      service.SearchService
	Feed        service.FeedService
	Seed        service.SeedService
}

type Handler struct {
	svc Services
	log logger.Logger
}

func NewHandler(svc Services, log logger.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Seed(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.Seed.Seed(r.Context())
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, res)
}

// pathParam returns a decoded route parameter. chi matches against
// URL.RawPath when the request carries one (an escaped "/" forces that),
// and then hands back the still-escaped segment.
func pathParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return v
	}
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}
