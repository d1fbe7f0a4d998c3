package entity

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func lehenga() Product {
	return Product{ID: "1", Username: "nameera", Caption: "Bridal Lehenga", Price: MustParsePrice("$500"), Size: "M", Color: "Red"}
}

func TestCart_AddItem_SameIdentityIncrementsQuantity(t *testing.T) {
	cart := NewCart()

	_, err := cart.AddItem(lehenga(), "M", testNow)
	require.NoError(t, err)
	line, err := cart.AddItem(lehenga(), "M", testNow)
	require.NoError(t, err)

	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.Selected)
}

func TestCart_AddItem_DifferentSizeIsSeparateLine(t *testing.T) {
	cart := NewCart()

	_, _ = cart.AddItem(lehenga(), "M", testNow)
	_, _ = cart.AddItem(lehenga(), "L", testNow)

	assert.Len(t, cart.Lines, 2)
	assert.Equal(t, 2, cart.ItemCount())
}

func TestCart_AddItem_RejectsProductWithoutID(t *testing.T) {
	cart := NewCart()
	_, err := cart.AddItem(Product{Price: MustParsePrice("$1")}, "", testNow)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, cart.Lines)
}

func TestCart_UpdateQuantity_ClampsToOne(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(lehenga(), "M", testNow)

	line, err := cart.UpdateQuantity("1", "M", -5)
	require.NoError(t, err)
	assert.Equal(t, MinLineQuantity, line.Quantity)

	line, err = cart.UpdateQuantity("1", "M", 3)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
	assert.Equal(t, 4, cart.Lines[0].Quantity)
}

func TestCart_UpdateQuantity_RejectsPastMaximum(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(lehenga(), "M", testNow)

	for _, delta := range []int{MaxLineQuantity, math.MaxInt} {
		_, err := cart.UpdateQuantity("1", "M", delta)
		assert.ErrorIs(t, err, ErrValidation)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	}

	line, err := cart.UpdateQuantity("1", "M", MaxLineQuantity-1)
	require.NoError(t, err)
	assert.Equal(t, MaxLineQuantity, line.Quantity)

	_, err = cart.AddItem(lehenga(), "M", testNow)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, MaxLineQuantity, cart.Lines[0].Quantity)

	line, err = cart.UpdateQuantity("1", "M", math.MinInt)
	require.NoError(t, err)
	assert.Equal(t, MinLineQuantity, line.Quantity)
}

func TestCart_MissingLine(t *testing.T) {
	cart := NewCart()

	_, err := cart.UpdateQuantity("9", "", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cart.ToggleSelection("9", "")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, cart.RemoveItem("9", ""), ErrNotFound)
}

func TestCart_ToggleAndRemoveSelected(t *testing.T) {
	cart := NewCart()
	gown := Product{ID: "4", Caption: "White Gown", Price: MustParsePrice("$400")}
	_, _ = cart.AddItem(lehenga(), "M", testNow)
	_, _ = cart.AddItem(gown, "XS", testNow)

	line, err := cart.ToggleSelection("4", "XS")
	require.NoError(t, err)
	assert.False(t, line.Selected)

	selected := cart.Selected()
	require.Len(t, selected, 1)
	assert.Equal(t, "1", selected[0].ProductID)

	removed := cart.RemoveSelected()
	require.Len(t, removed, 1)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "4", cart.Lines[0].ProductID)
}

func TestCart_JSONIsBareArray(t *testing.T) {
	cart := NewCart()
	_, _ = cart.AddItem(lehenga(), "M", testNow)

	raw, err := json.Marshal(cart)
	require.NoError(t, err)
	assert.Equal(t, byte('['), raw[0])

	var decoded Cart
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Lines, 1)
	assert.Equal(t, "Bridal Lehenga", decoded.Lines[0].Product.Caption)
	assert.True(t, decoded.Lines[0].Product.Price.Equal(MustParsePrice("$500")))

	empty, err := json.Marshal(Cart{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(empty))
}
