package readstore

import (
	"context"
	"log/slog"
	"time"

	"wellness-booking/internal/infra"
	"wellness-booking/internal/infra/repository"
	"wellness-booking/internal/infra/repository/converter"
	"wellness-booking/internal/pkg/pgconv"
	"wellness-booking/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BookingReadStore struct {
	db     repository.DBTX
	logger *slog.Logger
}

func NewBookingReadStore(db repository.DBTX, logger *slog.Logger) *BookingReadStore {
	return &BookingReadStore{db: db, logger: logger}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := repository.Builder().
		Select(converter.BookingColumns...).
		From("bookings").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking view select", err)
	}

	var row converter.BookingRow
	if err := r.db.QueryRow(ctx, query, args...).Scan(row.ScanTargets()...); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "booking not found", err)
		}
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to find booking view by ID", err)
	}
	return r.toView(row)
}

func (r *BookingReadStore) FindByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	return r.list(ctx, r.byUser(userID, limit))
}

func (r *BookingReadStore) FindByUserKeyset(ctx context.Context, userID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingView, error) {
	builder := r.byUser(userID, limit).
		Where(sq.Expr("(created_at, id) < (?, ?)", lastCreatedAt, lastID))
	return r.list(ctx, builder)
}

func (r *BookingReadStore) byUser(userID uuid.UUID, limit int32) sq.SelectBuilder {
	return repository.Builder().
		Select(converter.BookingColumns...).
		From("bookings").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(max(limit, 0))) // #nosec G115 -- clamped above zero
}

func (r *BookingReadStore) list(ctx context.Context, builder sq.SelectBuilder) ([]*queries.BookingView, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build booking list", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to list bookings", err)
	}
	defer rows.Close()

	var result []*queries.BookingView
	for rows.Next() {
		var row converter.BookingRow
		if err := rows.Scan(row.ScanTargets()...); err != nil {
			return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to scan booking row", err)
		}
		view, err := r.toView(row)
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to iterate bookings", err)
	}
	return result, nil
}

func (r *BookingReadStore) toView(row converter.BookingRow) (*queries.BookingView, error) {
	services, err := converter.DecodeServices(row.Services)
	if err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to decode booking services", err)
	}
	interval := row.Interval()

	return &queries.BookingView{
		ID:                 row.ID,
		UserID:             pgconv.UUIDPtrFromPgtype(row.UserID),
		RoomID:             row.RoomID,
		RoomName:           row.RoomName,
		Date:               interval.Date.String(),
		Range:              interval.String(),
		BasePrice:          row.BasePrice,
		Services:           services,
		StartTime:          row.StartTime,
		EndTime:            row.EndTime,
		CheckInTime:        row.CheckInTime,
		CheckOutTime:       row.CheckOutTime,
		VoucherCode:        pgconv.StringPtrFromPgtype(row.VoucherCode),
		DiscountValue:      row.DiscountValue,
		UsePoints:          row.UsePoints,
		PointsDiscount:     row.PointsDiscount,
		TotalPrice:         row.TotalPrice,
		Status:             row.Status,
		CustomerName:       row.CustomerName,
		CustomerPhone:      row.CustomerPhone,
		CustomerEmail:      row.CustomerEmail,
		RewardPointsEarned: int(row.RewardPointsEarned),
		CreatedAt:          row.CreatedAt,
	}, nil
}
