package commands

import (
	"context"
	"log/slog"
	"time"

	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/usecase/shared"
)

// RefundReconciler retries refunds that failed when a checkout was abandoned.
// Credits are keyed by ticket, so running it twice for the same ticket is harmless.
type RefundReconciler struct {
	store    shared.CheckoutRepository
	ledger   shared.LoyaltyLedger
	metrics  shared.Metrics
	clock    clock.Clock
	interval time.Duration
}

func NewRefundReconciler(
	store shared.CheckoutRepository,
	ledger shared.LoyaltyLedger,
	metrics shared.Metrics,
	clock clock.Clock,
	interval time.Duration,
) *RefundReconciler {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RefundReconciler{
		store:    store,
		ledger:   ledger,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
	}
}

// Run reconciles on every tick until ctx is done.
func (r *RefundReconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := r.ReconcileOnce(ctx); err != nil {
				slog.Error("refund reconciliation failed", "error", err.Error())
			}
		}
	}
}

// ReconcileOnce retries every queued refund and returns how many were settled.
func (r *RefundReconciler) ReconcileOnce(ctx context.Context) (int, error) {
	pending, err := r.store.PendingRefunds(ctx)
	if err != nil {
		return 0, err
	}

	settled := 0
	for _, p := range pending {
		now := r.clock.Now()
		balance, err := r.ledger.Credit(ctx, p.UserID, loyalty.RedemptionCost, loyalty.RefundRecord(p.TicketID, now))
		r.metrics.RefundAttempted(err == nil)
		if err != nil {
			slog.Warn("refund retry failed",
				"session_id", p.SessionID,
				"ticket_id", p.TicketID,
				"pending_since", p.Since,
				"error", err.Error())
			continue
		}

		if err := r.store.ClearRefundPending(ctx, p.TicketID); err != nil {
			slog.Warn("failed to clear settled refund", "ticket_id", p.TicketID, "error", err.Error())
		}
		r.dropAbandonedDraft(ctx, p)
		settled++

		slog.Info("refund reconciled", "session_id", p.SessionID, "ticket_id", p.TicketID, "balance", balance)
	}
	return settled, nil
}

// dropAbandonedDraft removes the draft left behind by the failed abandonment, unless
// the session has moved on to a new checkout.
func (r *RefundReconciler) dropAbandonedDraft(ctx context.Context, p shared.PendingRefund) {
	d, err := r.store.Load(ctx, p.SessionID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("failed to load draft for settled refund", "session_id", p.SessionID, "error", err.Error())
		}
		return
	}
	if !d.RefundPending || d.TicketID == nil || *d.TicketID != p.TicketID {
		return
	}
	if err := r.store.Delete(ctx, p.SessionID); err != nil {
		slog.Warn("failed to delete settled draft", "session_id", p.SessionID, "error", err.Error())
	}
}
