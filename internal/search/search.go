package search

import (
	"math"
	"strings"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/shopspring/decimal"
)

const (
	EarthRadiusKm = 6371.0

	DefaultRadiusKm = 50.0
)

var DefaultMinPrice = decimal.NewFromInt(1)

// Filter holds the active search criteria. Zero-valued fields are inactive,
// except MinPrice which falls back to DefaultMinPrice.
type Filter struct {
	Query    string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Size     string
	Color    string
	Sellers  []string
	Origin   *entity.GeoPoint
	RadiusKm float64
}

// Apply returns the products matching every active criterion, in input order.
func Apply(products []entity.Product, f Filter) []entity.Product {
	query := strings.ToLower(strings.TrimSpace(f.Query))
	minPrice := DefaultMinPrice
	if f.MinPrice != nil {
		minPrice = *f.MinPrice
	}
	radius := f.RadiusKm
	if radius <= 0 {
		radius = DefaultRadiusKm
	}
	sellers := make(map[string]struct{}, len(f.Sellers))
	for _, s := range f.Sellers {
		if s = strings.TrimSpace(s); s != "" {
			sellers[strings.ToLower(s)] = struct{}{}
		}
	}

	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if query != "" && !strings.Contains(strings.ToLower(p.Caption), query) {
			continue
		}
		if p.Price.Amount.LessThan(minPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.Amount.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.Size != "" && !strings.EqualFold(p.Size, f.Size) {
			continue
		}
		if f.Color != "" && !strings.EqualFold(p.Color, f.Color) {
			continue
		}
		if len(sellers) > 0 {
			if _, ok := sellers[strings.ToLower(p.Username)]; !ok {
				continue
			}
		}
		if f.Origin != nil {
			if p.Location == nil || Distance(*f.Origin, *p.Location) > radius {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

// Distance is the great-circle distance in kilometres between two points.
func Distance(a, b entity.GeoPoint) float64 {
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)
	lat1 := toRadians(a.Latitude)
	lat2 := toRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Similar is the "search by photo" stand-in: same color and a caption that
// mentions the garment kind.
func Similar(products []entity.Product, color, kind string) []entity.Product {
	kind = strings.ToLower(strings.TrimSpace(kind))
	out := make([]entity.Product, 0)
	for _, p := range products {
		if color != "" && !strings.EqualFold(p.Color, color) {
			continue
		}
		if kind != "" && !strings.Contains(strings.ToLower(p.Caption), kind) {
			continue
		}
		out = append(out, p)
	}
	return out
}
