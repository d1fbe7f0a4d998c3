package rest

import (
	"net/http"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter mounts every route on a chi mux. m may be nil.
func NewRouter(h *Handler, log logger.Logger, m *metrics.MetricsManager) http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(observe(log, m))
	mux.Use(middleware.Recoverer)

	mux.Get("/healthz", h.Health)

	mux.Route("/api", func(r chi.Router) {
		r.Get("/catalog", h.ListCatalog)
		r.Get("/catalog/{id}", h.GetProduct)
		r.Get("/search", h.Search)
		r.Get("/search/similar", h.SearchSimilar)
		r.Get("/sellers", h.ListSellers)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Get("/total", h.CartTotal)
			r.Get("/count", h.CartItemCount)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{id}/quantity", h.UpdateCartQuantity)
			r.Post("/items/{id}/toggle", h.ToggleCartItem)
			r.Delete("/items/{id}", h.RemoveCartItem)
		})

		r.Get("/favorites", h.ListFavorites)
		r.Post("/favorites", h.AddFavorite)
		r.Delete("/favorites/{id}", h.RemoveFavorite)

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", h.ListCollections)
			r.Post("/", h.CreateCollection)
			r.Get("/{name}", h.GetCollection)
			r.Delete("/{name}", h.DeleteCollection)
			r.Post("/{name}/items", h.AddCollectionItem)
			r.Delete("/{name}/items/{id}", h.RemoveCollectionItem)
		})

		r.Get("/chats", h.ListThreads)
		r.Get("/chats/{username}", h.GetThread)
		r.Post("/chats/{username}", h.SendMessage)

		r.Get("/products/{id}/reviews", h.ListReviews)
		r.Post("/products/{id}/reviews", h.SubmitReview)

		r.Post("/account/signup", h.SignUp)
		r.Post("/account/login", h.LogIn)
		r.Get("/account/settings", h.GetSettings)
		r.Put("/account/settings", h.UpdateSettings)

		r.Get("/feed", h.ListFeed)
		r.Post("/feed/{id}/like", h.ToggleLike)
		r.Post("/feed/{id}/save", h.SavePost)
		r.Delete("/feed/{id}/save", h.UnsavePost)

		r.Post("/checkout/quote", h.Quote)
		r.Post("/checkout/orders", h.PlaceOrder)
		r.Get("/orders", h.ListOrders)

		r.Post("/seed", h.Seed)
	})

	return mux
}
