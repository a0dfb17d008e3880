package components

import (
	"log/slog"

	"wellness-booking/internal/infra/catalog"
	"wellness-booking/internal/infra/draftstore"
	"wellness-booking/internal/infra/readstore"
	"wellness-booking/internal/infra/repository"
	"wellness-booking/internal/infra/uow"
	"wellness-booking/internal/pkg/config"
	"wellness-booking/internal/usecase/queries"
	"wellness-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	baseOption,
	readstoreModule,
	storeModule,
)

var baseOption = fx.Provide(
	NewDBTX,
	uow.NewPostgresUoW,
)

var readstoreModule = fx.Module("repository/readstore",
	fx.Provide(
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
	),
)

var storeModule = fx.Module("repository/store",
	fx.Provide(
		NewDraftStore,
		fx.Annotate(
			catalog.NewMongoCatalog,
			fx.As(new(shared.Catalog)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) repository.DBTX {
	return pool
}

func NewDraftStore(client *redis.Client, cfg config.Config, logger *slog.Logger) shared.CheckoutRepository {
	return draftstore.NewRedisStore(client, cfg.Redis.DraftTTL, logger)
}
