//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("stages a priced selection", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()

		p := item(s, "R1", "09:00", "10:30")
		p.Services = []commands.ServiceChoice{{ID: "svc-towel", Quantity: 3}, {ID: "svc-unknown"}}
		d, err := h.cart.AddItem(ctx, p)
		require.NoError(t, err)

		assert.Equal(t, money.Money(300_000), d.BasePrice)
		require.Len(t, d.Services, 1)
		assert.Equal(t, 3, d.Services[0].Quantity)

		cart, err := h.cart.List(ctx, s.ID)
		require.NoError(t, err)
		require.Len(t, cart, 1)
		assert.Equal(t, d.ID, cart[0].ID)
	})

	t.Run("numeric room id is normalized", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.cart.AddItem(ctx, item(newSession(), "2", "09:00", "10:00"))
		require.NoError(t, err)
	})

	t.Run("rejects a start inside the minimum lead time", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.cart.AddItem(ctx, item(newSession(), "R1", "07:20", "08:20"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, errs.Is(err, reservation.ErrLeadTimeNotMet))
		assert.Equal(t, 1, h.metrics.Rejected["lead_time"])
	})

	t.Run("rejects a start already passed", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.cart.AddItem(ctx, item(newSession(), "R1", "06:00", "08:00"))
		assert.True(t, errs.Is(err, reservation.ErrPastTime))
	})

	t.Run("rejects overlap with the session cart, touching is fine", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		_, err := h.cart.AddItem(ctx, item(s, "R1", "09:00", "10:00"))
		require.NoError(t, err)

		_, err = h.cart.AddItem(ctx, item(s, "R1", "09:30", "10:30"))
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Contains(t, err.Error(), "Sauna Suite")

		_, err = h.cart.AddItem(ctx, item(s, "R1", "10:00", "11:00"))
		require.NoError(t, err)
		_, err = h.cart.AddItem(ctx, item(s, "2", "09:30", "10:30"))
		require.NoError(t, err)
	})

	t.Run("rejects overlap with a committed booking", func(t *testing.T) {
		h := newHarness(t)
		first := newSession()
		h.stage(t, first, "09:00", "10:00")
		_, err := h.checkout.Commit(ctx, first)
		require.NoError(t, err)

		_, err = h.cart.AddItem(ctx, item(newSession(), "R1", "09:45", "11:00"))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Equal(t, 1, h.metrics.Rejected["conflict"])
	})

	t.Run("unknown room", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.cart.AddItem(ctx, item(newSession(), "R9", "09:00", "10:00"))
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("malformed window", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.cart.AddItem(ctx, item(newSession(), "R1", "10:00", "09:00"))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})
}

func TestCart_RemoveItem(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()

	d, err := h.cart.AddItem(ctx, item(s, "R1", "09:00", "10:00"))
	require.NoError(t, err)

	err = h.cart.RemoveItem(ctx, s.ID, uuid.New())
	assert.True(t, errs.Is(err, errs.ErrNotFound))

	require.NoError(t, h.cart.RemoveItem(ctx, s.ID, d.ID))
	cart, err := h.cart.List(ctx, s.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestCart_Checkout(t *testing.T) {
	ctx := context.Background()

	t.Run("merges touching selections and clears the cart", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		for _, w := range [][2]string{{"10:00", "11:00"}, {"09:00", "10:00"}} {
			_, err := h.cart.AddItem(ctx, item(s, "R1", w[0], w[1]))
			require.NoError(t, err)
		}

		res, err := h.cart.Checkout(ctx, s)
		require.NoError(t, err)
		require.Len(t, res.Draft.Reservations, 1)

		r := res.Draft.Reservations[0]
		assert.Equal(t, "09:00-11:00", r.Interval.String())
		assert.Equal(t, money.Money(400_000), r.BasePriceSum)
		assert.Len(t, r.SourceIDs, 2)
		assert.Equal(t, money.Money(400_000), res.Quote.Total)

		cart, err := h.cart.List(ctx, s.ID)
		require.NoError(t, err)
		assert.Empty(t, cart)
	})

	t.Run("empty cart", func(t *testing.T) {
		h := newHarness(t)
		_, err := h.cart.Checkout(ctx, newSession())
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("lead time is checked again at checkout", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		_, err := h.cart.AddItem(ctx, item(s, "R1", "08:00", "09:00"))
		require.NoError(t, err)

		h.clock.Add(45 * time.Minute)
		_, err = h.cart.Checkout(ctx, s)
		assert.True(t, errs.Is(err, reservation.ErrLeadTimeNotMet))
	})
}

func TestCart_BookNow(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()

	_, err := h.cart.AddItem(ctx, item(s, "R1", "09:00", "10:00"))
	require.NoError(t, err)

	// the cart does not take part in the conflict pool for a direct booking
	res, err := h.cart.BookNow(ctx, item(s, "R1", "09:00", "10:00"))
	require.NoError(t, err)
	require.Len(t, res.Draft.Reservations, 1)
	assert.Equal(t, money.Money(200_000), res.Quote.Subtotal)
	assert.Len(t, res.Draft.Services, 2)

	cart, err := h.cart.List(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, cart, 1)
}
