package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"wellness-booking/internal/infra/events"
	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/fx"
)

var MessagingModule = fx.Module("messaging",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (shared.EventPublisher, error) {
	if cfg.Rabbit.URL == "" {
		logger.Info("RABBIT_URL not set, booking events will not be published")
		return events.NewNopPublisher(logger), nil
	}

	conn, err := amqp.Dial(cfg.Rabbit.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	publisher, err := events.NewRabbitPublisher(conn, cfg.Rabbit.Exchange, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			_ = publisher.Close()
			return conn.Close()
		},
	})

	return publisher, nil
}
