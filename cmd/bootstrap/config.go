package bootstrap

import (
	"time"

	"wellness-booking/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewVenueLocation,
	),
)

// NewVenueLocation is the zone every wall-clock rule (lead time, voucher window, rendering) is evaluated in.
func NewVenueLocation(cfg config.Config) *time.Location {
	return cfg.Booking.Location()
}
