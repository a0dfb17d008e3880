package bootstrap

import (
	"context"
	"log/slog"

	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/usecase/commands"
	"wellness-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		NewRefundReconciler,
	),
	fx.Invoke(StartRefundReconciler),
)

func NewRefundReconciler(store shared.CheckoutRepository, ledger shared.LoyaltyLedger, m shared.Metrics, c clock.Clock, cfg config.Config) *commands.RefundReconciler {
	return commands.NewRefundReconciler(store, ledger, m, c, cfg.Booking.ReconcileInterval)
}

func StartRefundReconciler(lc fx.Lifecycle, r *commands.RefundReconciler, logger *slog.Logger) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting refund reconciler")
			go func() {
				defer close(done)
				r.Run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}
