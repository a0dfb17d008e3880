package repository

import (
	"context"
	"log/slog"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/infra/repository/converter"
	"wellness-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const bookingsTable = "bookings"

type BookingRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewBookingRepository(db DBTX, logger *slog.Logger) *BookingRepository {
	return &BookingRepository{db: db, logger: logger}
}

func (r *BookingRepository) Insert(ctx context.Context, b *booking.Booking) error {
	row, err := converter.BookingToRow(b)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to encode booking", err)
	}

	query, args, err := psql.Insert(bookingsTable).
		Columns(converter.BookingColumns...).
		Values(row.Values()...).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		switch {
		case pgconv.IsExclusionViolation(err):
			return infra.WrapRepoErr(r.logger, infra.KindConflict, "booking overlaps an active booking", err)
		case pgconv.IsUniqueViolation(err):
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "booking already exists", err)
		default:
			return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to insert booking", err)
		}
	}
	return nil
}

func (r *BookingRepository) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findByID(ctx, id, true)
}

func (r *BookingRepository) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findByID(ctx, id, false)
}

func (r *BookingRepository) findByID(ctx context.Context, id uuid.UUID, forUpdate bool) (*booking.Booking, error) {
	builder := psql.Select(converter.BookingColumns...).
		From(bookingsTable).
		Where(sq.Eq{"id": id})
	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking select", err)
	}

	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find booking by ID", err)
	}

	b, err := converter.RowToBooking(row)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode booking", err)
	}
	return b, nil
}

// UpdateStatus writes only the status columns; the financial snapshot is immutable.
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	query, args, err := psql.Update(bookingsTable).
		Set("status", b.Status().String()).
		Set("updated_at", b.UpdatedAt()).
		Where(sq.Eq{"id": b.ID()}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build status update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		if pgconv.IsExclusionViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindConflict, "reactivated booking overlaps an active booking", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", nil)
	}
	return nil
}

func (r *BookingRepository) ActiveOccupancy(ctx context.Context, roomID room.ID, date reservation.Date) ([]reservation.Occupancy, error) {
	query, args, err := psql.Select("id", "start_minute", "end_minute", "status").
		From(bookingsTable).
		Where(sq.Eq{
			"room_id":      roomID.String(),
			"booking_date": converter.DateToTime(date),
			"status":       activeStatusStrings(),
		}).
		OrderBy("start_minute ASC").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build occupancy select", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to load room occupancy", err)
	}
	defer rows.Close()

	var out []reservation.Occupancy
	for rows.Next() {
		var (
			id         uuid.UUID
			start, end int32
			status     string
		)
		if err := rows.Scan(&id, &start, &end, &status); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan room occupancy", err)
		}
		out = append(out, reservation.Occupancy{
			RefID:    id,
			RoomID:   roomID,
			Interval: reservation.TimeInterval{Date: date, StartMinute: int(start), EndMinute: int(end)},
			Status:   reservation.Status(status),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate room occupancy", err)
	}
	return out, nil
}

func activeStatusStrings() []string {
	active := reservation.ActiveStatuses()
	out := make([]string, len(active))
	for i, s := range active {
		out[i] = s.String()
	}
	return out
}
