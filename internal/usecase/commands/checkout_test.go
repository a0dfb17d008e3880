//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/pkg/errs"
	"wellness-booking/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordKinds(recs []loyalty.Record) []loyalty.RecordKind {
	out := make([]loyalty.RecordKind, len(recs))
	for i, r := range recs {
		out[i] = r.Kind
	}
	return out
}

func TestCheckout_ApplyVoucher(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name       string
		code       string
		wantMarker error
		wantTotal  money.Money
	}{
		{name: "percent voucher", code: "spring10", wantTotal: 180_000},
		{name: "unknown code", code: "NOPE99", wantMarker: errs.ErrNotFound},
		{name: "minimum order not met", code: "BIG50K", wantMarker: errs.ErrInsufficientResource},
		{name: "malformed code", code: "a!", wantMarker: errs.ErrValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			s := newSession()
			h.stage(t, s, "09:00", "10:00")

			res, err := h.checkout.ApplyVoucher(ctx, s, tc.code)
			if tc.wantMarker != nil {
				require.Error(t, err)
				assert.True(t, errs.Is(err, tc.wantMarker))

				d, err := h.store.Load(ctx, s.ID)
				require.NoError(t, err)
				assert.Empty(t, d.VoucherCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "SPRING10", res.Draft.VoucherCode)
			assert.Equal(t, tc.wantTotal, res.Quote.Total)
			assert.True(t, res.Quote.VoucherApplied)
		})
	}

	t.Run("remove", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.stage(t, s, "09:00", "10:00")
		_, err := h.checkout.ApplyVoucher(ctx, s, "SPRING10")
		require.NoError(t, err)

		res, err := h.checkout.RemoveVoucher(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, money.Money(200_000), res.Quote.Total)
	})
}

func TestCheckout_ToggleService(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()
	h.stage(t, s, "09:00", "10:00")

	res, err := h.checkout.ToggleService(ctx, s, "svc-massage", true, 0)
	require.NoError(t, err)
	assert.Equal(t, money.Money(350_000), res.Quote.Subtotal)

	res, err = h.checkout.ToggleService(ctx, s, "svc-towel", true, 2)
	require.NoError(t, err)
	assert.Equal(t, money.Money(390_000), res.Quote.Subtotal)

	res, err = h.checkout.ToggleService(ctx, s, "svc-massage", false, 0)
	require.NoError(t, err)
	assert.Equal(t, money.Money(240_000), res.Quote.Subtotal)

	_, err = h.checkout.ToggleService(ctx, s, "svc-missing", true, 0)
	assert.True(t, errs.Is(err, errs.ErrNotFound))

	_, err = h.checkout.ToggleService(ctx, s, "svc-towel", true, -1)
	assert.True(t, errs.Is(err, errs.ErrValidation))
}

func TestCheckout_Ownership(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()
	h.stage(t, s, "09:00", "10:00")

	intruder := commands.Session{ID: s.ID, UserID: uuid.New()}
	_, err := h.checkout.ApplyVoucher(ctx, intruder, "SPRING10")
	assert.True(t, errs.Is(err, errs.ErrForbidden))

	_, err = h.checkout.Commit(ctx, commands.Session{ID: uuid.New(), UserID: s.UserID})
	assert.True(t, errs.Is(err, errs.ErrNotFound))
}

func TestCheckout_Redemption(t *testing.T) {
	ctx := context.Background()

	t.Run("commit spends the points exactly once", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")

		ticket, err := h.checkout.ProposeRedeem(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID), "proposal must not move points")

		confirmed, err := h.checkout.ConfirmRedeem(ctx, s, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, 70, confirmed.Balance)
		assert.Equal(t, money.Money(20_000), confirmed.Checkout.Quote.PointsDiscount)

		committed, err := h.checkout.Commit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, money.Money(180_000), committed.Quote.Total)
		assert.Equal(t, 180, committed.Quote.RewardPoints)
		require.Len(t, committed.Bookings, 1)
		assert.True(t, committed.Bookings[0].UsePoints())

		assert.Equal(t, 70, h.uow.LedgerRepo.Balance(s.UserID))
		assert.Equal(t, []loyalty.RecordKind{loyalty.KindRedeem}, recordKinds(h.uow.LedgerRepo.Records()))
		assert.False(t, h.store.HasDraft(s.ID))
		assert.Equal(t, 1, h.metrics.Finished[checkout.StateCommitted])
	})

	t.Run("points are recorded on a stay the voucher already covers", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 60)
		h.stage(t, s, "09:00", "10:00")
		_, err := h.checkout.ApplyVoucher(ctx, s, "FREESTAY")
		require.NoError(t, err)
		h.redeem(t, s)

		committed, err := h.checkout.Commit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, money.Money(200_000), committed.Quote.VoucherDiscount)
		assert.Equal(t, money.Money(20_000), committed.Quote.PointsDiscount)
		assert.Zero(t, committed.Quote.Total)
		require.Len(t, committed.Bookings, 1)
		b := committed.Bookings[0]
		assert.True(t, b.UsePoints())
		assert.Equal(t, money.Money(20_000), b.PointsDiscount())
		assert.Zero(t, b.TotalPrice())
		assert.Equal(t, 10, h.uow.LedgerRepo.Balance(s.UserID))
	})

	t.Run("abandon returns the points exactly once", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")
		h.redeem(t, s)

		res, err := h.checkout.Abandon(ctx, s)
		require.NoError(t, err)
		assert.True(t, res.Refunded)
		require.NotNil(t, res.Balance)
		assert.Equal(t, 120, *res.Balance)
		assert.False(t, h.store.HasDraft(s.ID))

		_, err = h.checkout.Abandon(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrNotFound))

		assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))
		assert.Equal(t, []loyalty.RecordKind{loyalty.KindRedeem, loyalty.KindRefund}, recordKinds(h.uow.LedgerRepo.Records()))
	})

	t.Run("not enough points", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 49)
		h.stage(t, s, "09:00", "10:00")

		_, err := h.checkout.ProposeRedeem(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrInsufficientResource))
	})

	t.Run("expired ticket cannot be confirmed", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")

		ticket, err := h.checkout.ProposeRedeem(ctx, s)
		require.NoError(t, err)
		h.clock.Add(2 * time.Minute)

		_, err = h.checkout.ConfirmRedeem(ctx, s, ticket.ID)
		assert.True(t, errs.Is(err, loyalty.ErrTicketExpired))
		assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))

		_, err = h.checkout.ProposeRedeem(ctx, s)
		require.NoError(t, err)
	})

	t.Run("second proposal while one is live", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")

		ticket, err := h.checkout.ProposeRedeem(ctx, s)
		require.NoError(t, err)
		_, err = h.checkout.ProposeRedeem(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrConflict))

		_, err = h.checkout.CancelRedeem(ctx, s, ticket.ID)
		require.NoError(t, err)
		_, err = h.checkout.ConfirmRedeem(ctx, s, ticket.ID)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("failed draft write reverses the debit and burns the ticket", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")

		ticket, err := h.checkout.ProposeRedeem(ctx, s)
		require.NoError(t, err)

		h.store.SaveErr = errors.New("redis down")
		_, err = h.checkout.ConfirmRedeem(ctx, s, ticket.ID)
		require.Error(t, err)
		assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))

		h.store.SaveErr = nil
		_, err = h.checkout.ConfirmRedeem(ctx, s, ticket.ID)
		assert.True(t, errs.Is(err, loyalty.ErrTicketSettled))
		assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))
	})

	t.Run("undo while staged", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")
		h.redeem(t, s)

		res, err := h.checkout.UndoRedeem(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, 120, res.Balance)
		assert.False(t, res.Checkout.Draft.PointsRedeemed)
		assert.Equal(t, money.Money(200_000), res.Checkout.Quote.Total)

		_, err = h.checkout.UndoRedeem(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("restaging refunds the previous checkout", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 120)
		h.stage(t, s, "09:00", "10:00")
		h.redeem(t, s)
		require.Equal(t, 70, h.uow.LedgerRepo.Balance(s.UserID))

		res, err := h.cart.BookNow(ctx, item(s, "R1", "11:00", "12:00"))
		require.NoError(t, err)
		assert.False(t, res.Draft.PointsRedeemed)
		assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))
	})
}

func TestCheckout_RefundReconciliation(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()
	h.uow.LedgerRepo.Seed(s.UserID, 120)
	h.stage(t, s, "09:00", "10:00")
	h.redeem(t, s)

	heal := h.uow.LedgerRepo.FailRefunds()
	res, err := h.checkout.Abandon(ctx, s)
	require.NoError(t, err)
	assert.True(t, res.RefundPending)
	assert.False(t, res.Refunded)
	assert.Equal(t, 70, h.uow.LedgerRepo.Balance(s.UserID))
	assert.True(t, h.store.HasDraft(s.ID))

	settled, err := h.reconciler.ReconcileOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, settled)

	heal()
	settled, err = h.reconciler.ReconcileOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, settled)
	assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))
	assert.False(t, h.store.HasDraft(s.ID))

	settled, err = h.reconciler.ReconcileOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, settled)
	assert.Equal(t, 120, h.uow.LedgerRepo.Balance(s.UserID))
	assert.Equal(t, 1, h.metrics.Refunds[true])
	assert.Equal(t, 2, h.metrics.Refunds[false])
}

func TestCheckout_Leave(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()
	h.stage(t, s, "09:00", "10:00")
	_, err := h.checkout.ToggleService(ctx, s, "svc-towel", true, 4)
	require.NoError(t, err)

	_, err = h.checkout.ProceedToPayment(ctx, s)
	require.NoError(t, err)
	res, err := h.checkout.Leave(ctx, s)
	require.NoError(t, err)
	assert.Nil(t, res, "leaving for payment keeps the checkout")

	restored, err := h.checkout.Restore(ctx, s)
	require.NoError(t, err)
	assert.False(t, restored.Draft.Proceeding)
	assert.Equal(t, money.Money(280_000), restored.Quote.Subtotal)

	res, err = h.checkout.Leave(ctx, s)
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.False(t, h.store.HasDraft(s.ID))
	assert.Equal(t, 1, h.metrics.Finished[checkout.StateAbandoned])
}

func TestCheckout_RestoreDuringCatalogOutage(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	s := newSession()
	h.stage(t, s, "09:00", "10:00")
	_, err := h.checkout.ToggleService(ctx, s, "svc-massage", true, 0)
	require.NoError(t, err)

	services := h.catalog.Data.Services
	h.catalog.Data.Services = nil
	res, err := h.checkout.Restore(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, money.Money(350_000), res.Quote.Subtotal)

	h.catalog.Data.Services = services
	res, err = h.checkout.Restore(ctx, s)
	require.NoError(t, err)
	require.Len(t, res.Draft.SelectedServices(), 1)
	assert.Equal(t, "svc-massage", res.Draft.SelectedServices()[0].ID)
	assert.Len(t, res.Draft.Services, 2)
	assert.Equal(t, money.Money(350_000), res.Quote.Subtotal)
}

func TestCheckout_Commit(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates the quote across bookings", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		_, err := h.cart.AddItem(ctx, item(s, "R1", "09:00", "10:00"))
		require.NoError(t, err)
		_, err = h.cart.AddItem(ctx, item(s, "2", "13:00", "14:00"))
		require.NoError(t, err)
		_, err = h.cart.Checkout(ctx, s)
		require.NoError(t, err)

		_, err = h.checkout.ToggleService(ctx, s, "svc-massage", true, 0)
		require.NoError(t, err)
		_, err = h.checkout.ApplyVoucher(ctx, s, "SPRING10")
		require.NoError(t, err)
		_, err = h.checkout.SetContact(ctx, s, commands.ContactParams{Name: "Tran Thi Binh", Phone: "+84912345678", Email: "Binh@Example.com"})
		require.NoError(t, err)

		res, err := h.checkout.Commit(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, money.Money(470_000), res.Quote.Subtotal)
		assert.Equal(t, money.Money(47_000), res.Quote.VoucherDiscount)
		assert.Equal(t, money.Money(423_000), res.Quote.Total)
		require.Len(t, res.Bookings, 2)

		var total money.Money
		var reward int
		for _, b := range res.Bookings {
			total = total.Add(b.TotalPrice())
			reward += b.RewardPointsEarned()
			assert.Equal(t, "binh@example.com", b.Customer().Email)
		}
		assert.Equal(t, res.Quote.Total, total)
		assert.Equal(t, res.Quote.RewardPoints, reward)
		assert.Len(t, res.Bookings[0].Services(), 1)

		require.Len(t, h.publisher.Events, 1)
		assert.Len(t, h.publisher.Events[0].BookingIDs, 2)
		assert.Len(t, h.uow.BookingRepo.All(), 2)
	})

	t.Run("requires contact details", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		_, err := h.cart.BookNow(ctx, item(s, "R1", "09:00", "10:00"))
		require.NoError(t, err)

		_, err = h.checkout.Commit(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrValidation))
		assert.True(t, h.store.HasDraft(s.ID))
	})

	t.Run("refuses while a redemption is pending", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.uow.LedgerRepo.Seed(s.UserID, 60)
		h.stage(t, s, "09:00", "10:00")
		_, err := h.checkout.ProposeRedeem(ctx, s)
		require.NoError(t, err)

		_, err = h.checkout.Commit(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrConflict))
	})

	t.Run("loses the race for a slot", func(t *testing.T) {
		h := newHarness(t)
		first, second := newSession(), newSession()
		h.stage(t, first, "09:00", "10:00")
		h.stage(t, second, "09:30", "10:30")

		_, err := h.checkout.Commit(ctx, first)
		require.NoError(t, err)

		_, err = h.checkout.Commit(ctx, second)
		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.True(t, h.store.HasDraft(second.ID))
		assert.Len(t, h.uow.BookingRepo.All(), 1)
	})

	t.Run("closed checkout", func(t *testing.T) {
		h := newHarness(t)
		s := newSession()
		h.stage(t, s, "09:00", "10:00")
		_, err := h.checkout.Commit(ctx, s)
		require.NoError(t, err)

		_, err = h.checkout.Commit(ctx, s)
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})
}
