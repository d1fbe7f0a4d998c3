package entity

type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Comment struct {
	Username string `json:"username"`
	Text     string `json:"text"`
}

// Product is a catalog entry. Cart, favorites and collections hold copies,
// not references, so a stored snapshot can drift from the catalog.
type Product struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Seller       string    `json:"seller,omitempty"`
	Caption      string    `json:"caption"`
	Details      string    `json:"details,omitempty"`
	Price        Money     `json:"price"`
	DeliveryFee  *Money    `json:"deliveryFee,omitempty"`
	PostImage    string    `json:"postImage,omitempty"`
	ProfileImage string    `json:"profileImage,omitempty"`
	Size         string    `json:"size,omitempty"`
	Color        string    `json:"color,omitempty"`
	Likes        int       `json:"likes"`
	Comments     []Comment `json:"comments,omitempty"`
	Location     *GeoPoint `json:"location,omitempty"`
}

func (p Product) Validate() error {
	if p.ID == "" {
		return NewValidationError("product.id", "product id cannot be empty")
	}
	if p.Price.Currency == "" {
		return NewValidationError("product.price", "price is missing a currency")
	}
	if p.Price.Amount.IsNegative() {
		return NewValidationError("product.price", "price cannot be negative")
	}
	return nil
}
