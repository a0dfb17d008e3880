package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/usecase/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

const (
	roomsCollection    = "rooms"
	servicesCollection = "services"
	vouchersCollection = "vouchers"
)

// MongoCatalog reads the three reference feeds. Records that fail validation are
// skipped with a warning so one bad document never hides the rest of a feed.
type MongoCatalog struct {
	rooms    *mongo.Collection
	services *mongo.Collection
	vouchers *mongo.Collection
	logger   *slog.Logger
}

func NewMongoCatalog(db *mongo.Database, logger *slog.Logger) *MongoCatalog {
	return &MongoCatalog{
		rooms:    db.Collection(roomsCollection),
		services: db.Collection(servicesCollection),
		vouchers: db.Collection(vouchersCollection),
		logger:   logger,
	}
}

// Snapshot fetches all feeds in parallel. A feed that cannot be read comes back
// empty; the session keeps working with what is left.
func (c *MongoCatalog) Snapshot(ctx context.Context) shared.CatalogSnapshot {
	var snap shared.CatalogSnapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rooms, err := c.loadRooms(gctx)
		if err != nil {
			c.warnUnavailable(roomsCollection, err)
			return nil
		}
		snap.Rooms = rooms
		return nil
	})
	g.Go(func() error {
		services, err := c.loadServices(gctx)
		if err != nil {
			c.warnUnavailable(servicesCollection, err)
			return nil
		}
		snap.Services = services
		return nil
	})
	g.Go(func() error {
		vouchers, err := c.loadVouchers(gctx)
		if err != nil {
			c.warnUnavailable(vouchersCollection, err)
			return nil
		}
		snap.Vouchers = vouchers
		return nil
	})
	_ = g.Wait()

	return snap
}

func (c *MongoCatalog) RoomByID(ctx context.Context, id room.ID) (*room.Room, error) {
	rooms, err := c.loadRooms(ctx)
	if err != nil {
		return nil, infra.WrapRepoErr(c.logger, infra.KindCatalogUnavailable, "failed to read room feed", err)
	}
	for _, r := range rooms {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, infra.WrapRepoErr(c.logger, infra.KindNotFound, "room not found", nil)
}

func (c *MongoCatalog) VoucherByCode(ctx context.Context, code voucher.Code) (*voucher.Voucher, error) {
	var doc voucherDoc
	err := c.vouchers.FindOne(ctx, bson.M{"code": code.String()}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, infra.WrapRepoErr(c.logger, infra.KindNotFound, "voucher not found", err)
		}
		return nil, infra.WrapRepoErr(c.logger, infra.KindCatalogUnavailable, "failed to read voucher feed", err)
	}

	v, err := doc.toDomain()
	if err != nil {
		// a malformed voucher is as good as a missing one
		return nil, infra.WrapRepoErr(c.logger, infra.KindNotFound, "voucher record is invalid", err)
	}
	return v, nil
}

func (c *MongoCatalog) loadRooms(ctx context.Context) ([]*room.Room, error) {
	docs, err := findAll[roomDoc](ctx, c.rooms)
	if err != nil {
		return nil, err
	}
	out := make([]*room.Room, 0, len(docs))
	for _, d := range docs {
		r, err := d.toDomain()
		if err != nil {
			c.logger.Warn("skipping invalid room record", "room_id", d.ID, "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (c *MongoCatalog) loadServices(ctx context.Context) ([]reservation.ServiceLine, error) {
	docs, err := findAll[serviceDoc](ctx, c.services)
	if err != nil {
		return nil, err
	}
	out := make([]reservation.ServiceLine, 0, len(docs))
	for _, d := range docs {
		line, err := d.toDomain()
		if err != nil {
			c.logger.Warn("skipping invalid service record", "service_id", d.ID, "error", err)
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

func (c *MongoCatalog) loadVouchers(ctx context.Context) ([]*voucher.Voucher, error) {
	docs, err := findAll[voucherDoc](ctx, c.vouchers)
	if err != nil {
		return nil, err
	}
	out := make([]*voucher.Voucher, 0, len(docs))
	for _, d := range docs {
		v, err := d.toDomain()
		if err != nil {
			c.logger.Warn("skipping invalid voucher record", "code", strings.TrimSpace(d.Code), "error", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (c *MongoCatalog) warnUnavailable(feed string, err error) {
	c.logger.Warn("catalog feed unavailable, continuing with an empty list",
		"feed", feed,
		"kind", string(infra.KindCatalogUnavailable),
		"error", err)
}

func findAll[T any](ctx context.Context, coll *mongo.Collection) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var docs []T
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}
