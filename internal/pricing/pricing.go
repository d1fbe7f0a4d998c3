// Package pricing computes cart and checkout totals from selected cart lines.
package pricing

import (
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
)

type Options struct {
	// DefaultDeliveryFee applies to each selected line whose product carries no fee.
	DefaultDeliveryFee entity.Money
	// UsePickupPoint waives delivery entirely.
	UsePickupPoint bool
	// Currency is used for an empty selection. Defaults to the fee's currency.
	Currency string
}

type Total struct {
	Subtotal      entity.Money `json:"subtotal"`
	Delivery      entity.Money `json:"delivery"`
	Total         entity.Money `json:"total"`
	SelectedLines int          `json:"selectedLines"`
	ItemCount     int          `json:"itemCount"`
}

// ComputeTotal sums price times quantity over the selected lines plus a
// delivery fee per selected line. Each line amount and fee is rounded to cents
// before summing, so totals of disjoint selections add up and Total is always
// Subtotal plus Delivery. Lines in a currency other than the first selected
// line's are rejected.
func ComputeTotal(lines []entity.CartLine, opts Options) (Total, error) {
	currency := opts.Currency
	if currency == "" {
		currency = opts.DefaultDeliveryFee.Currency
	}
	if currency == "" {
		currency = entity.DefaultCurrency
	}
	for _, line := range lines {
		if line.Selected {
			currency = line.Product.Price.Currency
			break
		}
	}

	subtotal := entity.Zero(currency)
	delivery := entity.Zero(currency)
	out := Total{}

	for _, line := range lines {
		if !line.Selected {
			continue
		}
		if line.Quantity < entity.MinLineQuantity {
			return Total{}, entity.NewValidationError("quantity", "cart line quantity must be at least 1")
		}

		var err error
		subtotal, err = subtotal.Add(line.Product.Price.Mul(line.Quantity).Round())
		if err != nil {
			return Total{}, err
		}

		if !opts.UsePickupPoint {
			fee := opts.DefaultDeliveryFee
			if line.Product.DeliveryFee != nil {
				fee = *line.Product.DeliveryFee
			}
			if fee.Currency == "" {
				fee = entity.Zero(currency)
			}
			delivery, err = delivery.Add(fee.Round())
			if err != nil {
				return Total{}, err
			}
		}

		out.SelectedLines++
		out.ItemCount += line.Quantity
	}

	total, err := subtotal.Add(delivery)
	if err != nil {
		return Total{}, err
	}

	out.Subtotal = subtotal
	out.Delivery = delivery
	out.Total = total
	return out, nil
}
