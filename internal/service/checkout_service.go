package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/logger"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/pricing"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/state"
	"github.com/google/uuid"
)

type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order entity.Order) error
}

type EmailSender interface {
	Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error
}

type PlaceOrderRequest struct {
	ShippingAddress entity.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   entity.PaymentMethod   `json:"paymentMethod"`
	UsePickupPoint  bool                   `json:"usePickupPoint"`
	// Email overrides the signed-up user's address for the confirmation.
	Email string `json:"email,omitempty"`
}

func (r PlaceOrderRequest) Validate() error {
	if err := r.ShippingAddress.Validate(); err != nil {
		return err
	}
	if r.PaymentMethod == "" {
		return entity.NewValidationError("paymentMethod", "please select a payment method")
	}
	if !r.PaymentMethod.Valid() {
		return entity.NewValidationError("paymentMethod", fmt.Sprintf("unsupported payment method %q", r.PaymentMethod))
	}
	return nil
}

type CheckoutService interface {
	Quote(ctx context.Context, usePickupPoint bool) (*pricing.Total, error)
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*entity.Order, error)
	ListOrders(ctx context.Context) (entity.Orders, error)
}

type CheckoutServiceConfig struct {
	DeliveryFee entity.Money
}

type checkoutService struct {
	cols      *state.Collections
	log       logger.Logger
	fee       entity.Money
	publisher OrderEventPublisher
	mailer    EmailSender
	metrics   *metrics.MetricsManager
}

// NewCheckoutService accepts nil publisher, mailer and metrics; each is skipped when absent.
func NewCheckoutService(
	cols *state.Collections,
	log logger.Logger,
	cfg CheckoutServiceConfig,
	publisher OrderEventPublisher,
	mailer EmailSender,
	m *metrics.MetricsManager,
) CheckoutService {
	return &checkoutService{
		cols:      cols,
		log:       log,
		fee:       cfg.DeliveryFee,
		publisher: publisher,
		mailer:    mailer,
		metrics:   m,
	}
}

func (s *checkoutService) Quote(ctx context.Context, usePickupPoint bool) (*pricing.Total, error) {
	cart, err := s.cols.Cart.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	total, err := pricing.ComputeTotal(cart.Lines, pricing.Options{DefaultDeliveryFee: s.fee, UsePickupPoint: usePickupPoint})
	if err != nil {
		return nil, err
	}
	return &total, nil
}

// PlaceOrder records an order for the selected cart lines and removes them
// from the cart. Nothing is written when validation fails.
func (s *checkoutService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*entity.Order, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cart, err := s.cols.Cart.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve cart: %w", err)
	}
	selected := cart.Selected()
	if len(selected) == 0 {
		return nil, entity.NewValidationError("cart", "no items selected for checkout")
	}

	total, err := pricing.ComputeTotal(selected, pricing.Options{DefaultDeliveryFee: s.fee, UsePickupPoint: req.UsePickupPoint})
	if err != nil {
		return nil, err
	}

	order := entity.Order{
		ID:              uuid.NewString(),
		Lines:           selected,
		Subtotal:        total.Subtotal,
		Delivery:        total.Delivery,
		Total:           total.Total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		UsePickupPoint:  req.UsePickupPoint,
		Status:          entity.OrderStatusPending,
		PlacedAt:        s.cols.Store().Now(),
	}

	s.log.Infof("Placing order %s: lines=%d total=%s", order.ID, len(order.Lines), order.Total)
	_, err = s.cols.Orders.Update(ctx, func(orders *entity.Orders) error {
		*orders = append(*orders, order)
		return nil
	})
	if err != nil {
		s.log.Errorf("Error saving order %s: %v", order.ID, err)
		return nil, fmt.Errorf("could not save order: %w", err)
	}

	// Units added to a line after the cart was read stay behind.
	_, err = s.cols.Cart.Update(ctx, func(c *entity.Cart) error {
		for _, line := range order.Lines {
			existing, _ := c.GetLine(line.ProductID, line.Size)
			if existing == nil {
				continue
			}
			if existing.Quantity > line.Quantity {
				existing.Quantity -= line.Quantity
				continue
			}
			_ = c.RemoveItem(line.ProductID, line.Size)
		}
		return nil
	})
	if err != nil {
		s.log.Errorf("Order %s saved but ordered lines could not be removed from the cart: %v", order.ID, err)
	}

	if s.metrics != nil {
		s.metrics.OrdersPlacedTotal.Inc()
	}
	if s.publisher != nil {
		if err := s.publisher.PublishOrderPlaced(ctx, order); err != nil {
			s.log.Warnf("Failed to publish order placed event for %s: %v", order.ID, err)
		}
	}
	s.sendConfirmation(ctx, order, req.Email)

	s.log.Infof("Order %s placed successfully", order.ID)
	return &order, nil
}

func (s *checkoutService) ListOrders(ctx context.Context) (entity.Orders, error) {
	orders, err := s.cols.Orders.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	return orders, nil
}

func (s *checkoutService) sendConfirmation(ctx context.Context, order entity.Order, email string) {
	if s.mailer == nil {
		return
	}
	if email == "" {
		user, err := s.cols.User.Load(ctx)
		if err != nil {
			s.log.Warnf("Could not load user for order %s confirmation: %v", order.ID, err)
			return
		}
		email = user.Email
	}
	if email == "" {
		s.log.Debugf("No email address for order %s confirmation", order.ID)
		return
	}

	subject := fmt.Sprintf("Your Sharaya order %s", shortID(order.ID))
	if err := s.mailer.Send(ctx, []string{email}, subject, "", orderConfirmationText(order)); err != nil {
		s.log.Warnf("Failed to send confirmation for order %s: %v", order.ID, err)
	}
}

func orderConfirmationText(order entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s,\n\nThank you for your order. Status: %s\n\n", order.ShippingAddress.FullName, order.Status)
	for _, line := range order.Lines {
		fmt.Fprintf(&b, "  %d x %s (%s)  %s\n", line.Quantity, line.Product.Caption, line.Size, line.Product.Price.Mul(line.Quantity))
	}
	fmt.Fprintf(&b, "\nSubtotal: %s\nDelivery: %s\nTotal: %s\n", order.Subtotal, order.Delivery, order.Total)
	if order.UsePickupPoint {
		b.WriteString("\nYour order will be ready at the pickup point.\n")
	} else {
		a := order.ShippingAddress
		fmt.Fprintf(&b, "\nShipping to: %s, %s, %s %s, %s\n", a.AddressLine1, a.City, a.State, a.PostalCode, a.Country)
	}
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
