package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Code string `json:"code"`
	N    int    `json:"n"`
}

func TestKeySeparatesScopes(t *testing.T) {
	id := Identity{ClientID: "client-1", SessionID: "tab-1"}

	cart, err := key("p", id, CartSlot)
	require.NoError(t, err)
	coupon, err := key("p", id, AppliedCouponSlot)
	require.NoError(t, err)

	assert.Equal(t, "p:durable:client-1:cart", cart)
	assert.Equal(t, "p:session:tab-1:applied_coupon", coupon)
}

func TestKeyRequiresOwner(t *testing.T) {
	_, err := key("p", Identity{ClientID: "client-1"}, ActiveOfferSlot)
	assert.ErrorIs(t, err, ErrNoIdentity)

	_, err = key("p", Identity{SessionID: "tab-1"}, CartSlot)
	assert.ErrorIs(t, err, ErrNoIdentity)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := Identity{ClientID: "client-1", SessionID: "tab-1"}

	var got payload
	ok, err := store.Load(ctx, id, AppliedCouponSlot, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save(ctx, id, AppliedCouponSlot, payload{Code: "DEZ10", N: 10}))

	ok, err = store.Load(ctx, id, AppliedCouponSlot, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Code: "DEZ10", N: 10}, got)

	require.NoError(t, store.Delete(ctx, id, AppliedCouponSlot))
	ok, err = store.Load(ctx, id, AppliedCouponSlot, &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreEndSessionKeepsDurable(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := Identity{ClientID: "client-1", SessionID: "tab-1"}

	require.NoError(t, store.Save(ctx, id, CartSlot, payload{N: 1}))
	require.NoError(t, store.Save(ctx, id, ActiveOfferSlot, payload{Code: "combo"}))

	store.EndSession("tab-1")

	var got payload
	ok, err := store.Load(ctx, id, ActiveOfferSlot, &got)
	require.NoError(t, err)
	assert.False(t, ok)

	// A new tab of the same client still sees the cart.
	next := Identity{ClientID: "client-1", SessionID: "tab-2"}
	ok, err = store.Load(ctx, next, CartSlot, &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, got.N)
}
