package entity

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentCard           PaymentMethod = "card"
	PaymentCashOnDelivery PaymentMethod = "cod"
	PaymentWallet         PaymentMethod = "wallet"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCard, PaymentCashOnDelivery, PaymentWallet:
		return true
	}
	return false
}

type ShippingAddress struct {
	FullName     string `json:"fullName"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2,omitempty"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
	PhoneNumber  string `json:"phoneNumber"`
}

func (a ShippingAddress) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"fullName", a.FullName},
		{"addressLine1", a.AddressLine1},
		{"city", a.City},
		{"state", a.State},
		{"postalCode", a.PostalCode},
		{"country", a.Country},
		{"phoneNumber", a.PhoneNumber},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return NewValidationError("shippingAddress."+r.field, "please fill in all required shipping address fields")
		}
	}
	return nil
}

type Order struct {
	ID              string          `json:"id"`
	Lines           []CartLine      `json:"lines"`
	Subtotal        Money           `json:"subtotal"`
	Delivery        Money           `json:"delivery"`
	Total           Money           `json:"total"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	UsePickupPoint  bool            `json:"usePickupPoint"`
	Status          OrderStatus     `json:"status"`
	PlacedAt        time.Time       `json:"placedAt"`
}

type Orders []Order
