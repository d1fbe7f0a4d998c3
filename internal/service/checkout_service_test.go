package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/platform/metrics"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderEventPublisher struct {
	mock.Mock
}

func (m *MockOrderEventPublisher) PublishOrderPlaced(ctx context.Context, order entity.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to []string, subject, bodyHTML, bodyText string) error {
	args := m.Called(ctx, to, subject, bodyHTML, bodyText)
	return args.Error(0)
}

func validAddress() entity.ShippingAddress {
	return entity.ShippingAddress{
		FullName:     "Ayesha Rahman",
		AddressLine1: "House 12, Road 5",
		City:         "Dhaka",
		State:        "Dhaka",
		PostalCode:   "1207",
		Country:      "Bangladesh",
		PhoneNumber:  "+8801700000000",
	}
}

func TestCheckoutService_PlaceOrder(t *testing.T) {
	env := newTestEnv(t)
	cart := newCartService(env)
	pub := new(MockOrderEventPublisher)
	mailer := new(MockEmailSender)
	m := metrics.NewMetricsManager("sharaya_test")
	svc := NewCheckoutService(env.cols, env.log, CheckoutServiceConfig{DeliveryFee: tenDollars}, pub, mailer, m)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, "1", "M")
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "4", "XS")
	require.NoError(t, err)
	_, err = cart.ToggleSelection(ctx, "4", "XS")
	require.NoError(t, err)

	pub.On("PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(o entity.Order) bool {
		return o.Status == entity.OrderStatusPending && len(o.Lines) == 1
	})).Return(errors.New("nats down")).Once()
	mailer.On("Send", mock.Anything, []string{"buyer@example.com"}, mock.AnythingOfType("string"), "", mock.MatchedBy(func(body string) bool {
		return strings.Contains(body, "Bridal Lehenga") && strings.Contains(body, "Total: $510.00") && strings.Contains(body, "Dhaka")
	})).Return(nil).Once()

	order, err := svc.PlaceOrder(ctx, PlaceOrderRequest{
		ShippingAddress: validAddress(),
		PaymentMethod:   entity.PaymentCashOnDelivery,
		Email:           "buyer@example.com",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
	assert.Equal(t, "$510.00", order.Total.String())
	assert.Equal(t, fixedNow, order.PlacedAt)

	view, err := cart.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "4", view.Lines[0].ProductID)

	orders, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OrdersPlacedTotal))
	pub.AssertExpectations(t)
	mailer.AssertExpectations(t)
}

func TestCheckoutService_KeepsUnitsAddedDuringCheckout(t *testing.T) {
	env := newTestEnv(t)
	cart := newCartService(env)
	svc := NewCheckoutService(env.cols, env.log, CheckoutServiceConfig{DeliveryFee: tenDollars}, nil, nil, nil)
	ctx := context.Background()

	_, err := cart.AddItem(ctx, "1", "M")
	require.NoError(t, err)
	_, err = cart.AddItem(ctx, "1", "M")
	require.NoError(t, err)

	// Another lehenga lands in the cart between the order write and the cleanup.
	var added bool
	env.cols.Orders.Subscribe(func(string, entity.Orders) {
		if added {
			return
		}
		added = true
		_, err := cart.AddItem(ctx, "1", "M")
		assert.NoError(t, err)
	})

	order, err := svc.PlaceOrder(ctx, PlaceOrderRequest{ShippingAddress: validAddress(), PaymentMethod: entity.PaymentCashOnDelivery})
	require.NoError(t, err)
	require.Len(t, order.Lines, 1)
	assert.Equal(t, 2, order.Lines[0].Quantity)

	view, err := cart.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Quantity)
}

func TestCheckoutService_PickupPointWaivesDelivery(t *testing.T) {
	env := newTestEnv(t)
	cart := newCartService(env)
	svc := NewCheckoutService(env.cols, env.log, CheckoutServiceConfig{DeliveryFee: tenDollars}, nil, nil, nil)
	ctx := context.Background()
	_, _ = cart.AddItem(ctx, "2", "S")

	quote, err := svc.Quote(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "$300.00", quote.Total.String())

	order, err := svc.PlaceOrder(ctx, PlaceOrderRequest{ShippingAddress: validAddress(), PaymentMethod: entity.PaymentCard, UsePickupPoint: true})
	require.NoError(t, err)
	assert.True(t, order.Delivery.IsZero())
}

func TestCheckoutService_ValidationBlocksBeforeStorage(t *testing.T) {
	kv := new(MockKeyValueStore)
	env := newTestEnvWithStore(t, kv)
	svc := NewCheckoutService(env.cols, env.log, CheckoutServiceConfig{DeliveryFee: tenDollars}, nil, nil, nil)

	addr := validAddress()
	addr.City = ""
	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{ShippingAddress: addr, PaymentMethod: entity.PaymentCard})
	assert.ErrorIs(t, err, entity.ErrValidation)

	_, err = svc.PlaceOrder(context.Background(), PlaceOrderRequest{ShippingAddress: validAddress()})
	var verr *entity.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "paymentMethod", verr.Field)

	kv.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	kv.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_EmptySelection(t *testing.T) {
	env := newTestEnv(t)
	svc := NewCheckoutService(env.cols, env.log, CheckoutServiceConfig{DeliveryFee: tenDollars}, nil, nil, nil)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{ShippingAddress: validAddress(), PaymentMethod: entity.PaymentWallet})

	assert.ErrorIs(t, err, entity.ErrValidation)
	orders, err := svc.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestCheckoutService_OrderWriteFailureKeepsCart(t *testing.T) {
	kv := new(MockKeyValueStore)
	env := newTestEnvWithStore(t, kv)
	svc := NewCheckoutService(env.cols, env.log, CheckoutServiceConfig{DeliveryFee: tenDollars}, nil, nil, nil)

	cartJSON := `[{"productId":"1","size":"M","product":{"id":"1","caption":"Bridal Lehenga","price":"$500"},"quantity":1,"selected":true}]`
	kv.On("Get", mock.Anything, repository.KeyCart).Return(cartJSON, nil).Once()
	kv.On("Get", mock.Anything, repository.KeyOrders).Return("", repository.ErrNotFound).Once()
	kv.On("Set", mock.Anything, repository.KeyOrders, mock.Anything).
		Return(repository.NewStorageError(repository.OpWrite, repository.KeyOrders, errors.New("quota"))).Once()

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderRequest{ShippingAddress: validAddress(), PaymentMethod: entity.PaymentCard})

	assert.ErrorIs(t, err, repository.ErrStorageWrite)
	kv.AssertNotCalled(t, "Set", mock.Anything, repository.KeyCart, mock.Anything)
	kv.AssertExpectations(t)
}
