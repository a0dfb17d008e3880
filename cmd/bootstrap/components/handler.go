package components

import (
	"wellness-booking/internal/handler"
	"wellness-booking/internal/handler/api"
	"wellness-booking/internal/handler/middleware"
	"wellness-booking/internal/infra/metrics"
	"wellness-booking/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCartHandler,
		api.NewCheckoutHandler,
		api.NewBookingHandler,
		middleware.NewAuthMiddleware,
		NewRateLimiter,
		NewHandlers,
		NewObservability,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(cart *api.CartHandler, checkout *api.CheckoutHandler, booking *api.BookingHandler) handler.Handlers {
	return handler.Handlers{Cart: cart, Checkout: checkout, Booking: booking}
}

func NewRateLimiter(cfg config.Config, recorder *metrics.Recorder) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.Booking.RateLimitRPS, cfg.Booking.RateLimitBurst, recorder.RateLimited)
}

func NewObservability(recorder *metrics.Recorder, reg *prometheus.Registry) handler.Observability {
	return handler.Observability{Observer: recorder, Gatherer: reg}
}
