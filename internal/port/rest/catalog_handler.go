package rest

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/search"
	"github.com/shopspring/decimal"
)

func (h *Handler) ListCatalog(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.svc.Search.Catalog(r.Context()))
}

func (h *Handler) ListSellers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.svc.Search.Sellers(r.Context()))
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Search.Product(r.Context(), pathParam(r, "id"))
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, p)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		handleServiceError(w, err, h.log)
		return
	}
	respondWithJSON(w, http.StatusOK, h.svc.Search.Search(r.Context(), f))
}

func (h *Handler) SearchSimilar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondWithJSON(w, http.StatusOK, h.svc.Search.Similar(r.Context(), q.Get("color"), q.Get("kind")))
}

// parseFilter reads q, minPrice, maxPrice, size, color, seller (repeatable or
// comma separated), lat, lng and radius.
func parseFilter(r *http.Request) (search.Filter, error) {
	q := r.URL.Query()
	f := search.Filter{
		Query: q.Get("q"),
		Size:  q.Get("size"),
		Color: q.Get("color"),
	}

	for _, raw := range q["seller"] {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				f.Sellers = append(f.Sellers, s)
			}
		}
	}

	var err error
	if f.MinPrice, err = parseDecimalParam(q.Get("minPrice"), "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parseDecimalParam(q.Get("maxPrice"), "maxPrice"); err != nil {
		return f, err
	}

	lat, lng := q.Get("lat"), q.Get("lng")
	if lat != "" || lng != "" {
		latV, errLat := strconv.ParseFloat(lat, 64)
		lngV, errLng := strconv.ParseFloat(lng, 64)
		if errLat != nil || errLng != nil {
			return f, entity.NewValidationError("location", "lat and lng must both be numbers")
		}
		f.Origin = &entity.GeoPoint{Latitude: latV, Longitude: lngV}
	}
	if radius := q.Get("radius"); radius != "" {
		v, err := strconv.ParseFloat(radius, 64)
		if err != nil || v < 0 {
			return f, entity.NewValidationError("radius", "radius must be a positive number of kilometres")
		}
		f.RadiusKm = v
	}
	return f, nil
}

func parseDecimalParam(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	money, err := entity.ParsePrice(raw)
	if err != nil {
		return nil, entity.NewValidationError(field, "must be a non-negative price")
	}
	return &money.Amount, nil
}
