package shared

import (
	"context"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: ReadCommitted write transaction with retry on serialization failures
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinSerializable: read-balance/write-balance/append-row sequences on the ledger
	WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: validation reads outside a transaction
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Ledger() LedgerRepository
	Reads() CommandReads
}

type CommandReads interface {
	ActiveOccupancy(ctx context.Context, roomID room.ID, date reservation.Date) ([]reservation.Occupancy, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type BookingRepository interface {
	Insert(ctx context.Context, b *booking.Booking) error
	// LockByID reads the row FOR UPDATE so a status change cannot clobber a concurrent one.
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
	ActiveOccupancy(ctx context.Context, roomID room.ID, date reservation.Date) ([]reservation.Occupancy, error)
}

type LedgerRepository interface {
	// LockAccount returns the account row FOR UPDATE, creating an empty one if needed.
	LockAccount(ctx context.Context, userID uuid.UUID) (loyalty.Account, error)
	HasRecord(ctx context.Context, key string) (bool, error)
	SetBalance(ctx context.Context, userID uuid.UUID, points int, tier loyalty.StarTier) error
	AppendRecord(ctx context.Context, userID uuid.UUID, rec loyalty.Record) error
}
