package components

import (
	"time"

	"wellness-booking/internal/domain/pricing"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/pkg/clock"
	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/usecase"
	"wellness-booking/internal/usecase/commands"
	"wellness-booking/internal/usecase/queries"
	"wellness-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	pricing.NewEngine,
	shared.NewLoyaltyLedger,
	shared.NewQuoteBuilder,
	NewLeadTimePolicy,
	NewCheckoutOptions,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCheckoutCommands,
		commands.NewCartCommands,
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewCheckoutQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewLeadTimePolicy(cfg config.Config, loc *time.Location) reservation.LeadTimePolicy {
	return reservation.NewLeadTimePolicy(cfg.Booking.MinLeadTime, loc)
}

func NewCheckoutOptions(cfg config.Config, loc *time.Location) commands.CheckoutOptions {
	return commands.CheckoutOptions{
		RedemptionTTL: cfg.Booking.RedemptionTTL,
		Location:      loc,
	}
}
