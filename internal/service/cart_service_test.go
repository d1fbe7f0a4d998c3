package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/domain/entity"
	"github.com/Abdurahmanit/GroupProject/sharaya-service/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartService(env *testEnv) CartService {
	return NewCartService(env.cols, env.catalog, env.log, CartServiceConfig{DeliveryFee: tenDollars})
}

func TestCartService_AddLehengaTotalsFiveHundredTen(t *testing.T) {
	env := newTestEnv(t)
	svc := newCartService(env)
	ctx := context.Background()

	line, err := svc.AddItem(ctx, "1", "")
	require.NoError(t, err)
	assert.Equal(t, "M", line.Size)
	assert.Equal(t, 1, line.Quantity)
	assert.True(t, line.Selected)

	view, err := svc.GetCart(ctx)
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "$510.00", view.Total.Total.String())
}

func TestCartService_AddTwiceIncrementsQuantity(t *testing.T) {
	env := newTestEnv(t)
	svc := newCartService(env)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "2", "S")
	require.NoError(t, err)
	line, err := svc.AddItem(ctx, "2", "S")
	require.NoError(t, err)

	assert.Equal(t, 2, line.Quantity)
	view, err := svc.GetCart(ctx)
	require.NoError(t, err)
	assert.Len(t, view.Lines, 1)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	svc := newCartService(newTestEnv(t))

	_, err := svc.AddItem(context.Background(), "404", "")

	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCartService_QuantityFloorAndRemove(t *testing.T) {
	env := newTestEnv(t)
	svc := newCartService(env)
	ctx := context.Background()
	_, err := svc.AddItem(ctx, "4", "XS")
	require.NoError(t, err)

	line, err := svc.UpdateQuantity(ctx, "4", "XS", -1)
	require.NoError(t, err)
	assert.Equal(t, 1, line.Quantity)

	require.NoError(t, svc.RemoveItem(ctx, "4", "XS"))
	err = svc.RemoveItem(ctx, "4", "XS")
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = svc.UpdateQuantity(ctx, "4", "XS", 1)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestCartService_ToggleSelectionIsPersistedAndAffectsTotal(t *testing.T) {
	env := newTestEnv(t)
	svc := newCartService(env)
	ctx := context.Background()
	_, _ = svc.AddItem(ctx, "1", "M")
	_, _ = svc.AddItem(ctx, "2", "S")

	line, err := svc.ToggleSelection(ctx, "2", "S")
	require.NoError(t, err)
	assert.False(t, line.Selected)

	fresh := NewCartService(env.cols, env.catalog, env.log, CartServiceConfig{DeliveryFee: tenDollars})
	total, err := fresh.Total(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, "$510.00", total.Total.String())

	pickup, err := fresh.Total(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, "$500.00", pickup.Total.String())
}

func TestCartService_Clear(t *testing.T) {
	env := newTestEnv(t)
	svc := newCartService(env)
	ctx := context.Background()
	_, _ = svc.AddItem(ctx, "1", "M")

	require.NoError(t, svc.Clear(ctx))

	view, err := svc.GetCart(ctx)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.NotNil(t, view.Lines)
}

func TestCartService_StorageWriteFailureSurfaces(t *testing.T) {
	kv := new(MockKeyValueStore)
	kv.On("Get", mock.Anything, repository.KeyCart).Return("", repository.ErrNotFound).Once()
	kv.On("Set", mock.Anything, repository.KeyCart, mock.Anything).
		Return(repository.NewStorageError(repository.OpWrite, repository.KeyCart, errors.New("disk full"))).Once()
	svc := newCartService(newTestEnvWithStore(t, kv))

	line, err := svc.AddItem(context.Background(), "1", "M")

	assert.Nil(t, line)
	assert.ErrorIs(t, err, repository.ErrStorageWrite)
	assert.Contains(t, err.Error(), "could not add item to cart")
	kv.AssertExpectations(t)
}

func TestCartService_StorageReadFailureSurfaces(t *testing.T) {
	kv := new(MockKeyValueStore)
	kv.On("Get", mock.Anything, repository.KeyCart).
		Return("", repository.NewStorageError(repository.OpRead, repository.KeyCart, errors.New("timeout"))).Once()
	svc := newCartService(newTestEnvWithStore(t, kv))

	_, err := svc.GetCart(context.Background())

	assert.ErrorIs(t, err, repository.ErrStorageRead)
	kv.AssertExpectations(t)
}

func TestCartService_ItemCount(t *testing.T) {
	svc := newCartService(newTestEnv(t))
	ctx := context.Background()

	n, err := svc.ItemCount(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, _ = svc.AddItem(ctx, "1", "M")
	_, _ = svc.AddItem(ctx, "1", "M")
	_, _ = svc.AddItem(ctx, "3", "L")

	n, err = svc.ItemCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestCartService_ItemCountReadsStoreOnce(t *testing.T) {
	kv := new(MockKeyValueStore)
	kv.On("Get", mock.Anything, repository.KeyCart).Return("", repository.ErrNotFound).Once()
	svc := newCartService(newTestEnvWithStore(t, kv))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		n, err := svc.ItemCount(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	}
	kv.AssertNumberOfCalls(t, "Get", 1)
}
