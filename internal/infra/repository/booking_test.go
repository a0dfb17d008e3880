//go:build unit

package repository_test

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/infra/repository"
	"wellness-booking/tests/common/builder"
	repositorymock "wellness-booking/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubRow struct {
	scan func(dest ...any) error
}

func (r stubRow) Scan(dest ...any) error { return r.scan(dest...) }

func noRows() pgx.Row {
	return stubRow{scan: func(...any) error { return pgx.ErrNoRows }}
}

// =============================================================================
// Insert Tests
// =============================================================================

func TestBookingRepository_Insert(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: booking inserted"},
		{
			name:       "error: overlap caught by exclusion constraint",
			execErr:    &pgconn.PgError{Code: "23P01", Message: "conflicting key value violates exclusion constraint"},
			expectKind: infra.KindConflict,
		},
		{
			name:       "error: duplicate id",
			execErr:    &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectKind: infra.KindDuplicateKey,
		},
		{
			name:       "error: database error occurs",
			execErr:    errors.New("connection reset"),
			expectKind: infra.KindDBFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := repositorymock.NewMockDBTX(ctrl)
			repo := repository.NewBookingRepository(db, slog.Default())
			b := builder.NewBookingBuilder().Build()

			db.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
					assert.True(t, strings.HasPrefix(sql, "INSERT INTO bookings"))
					assert.Contains(t, sql, "$26")
					require.Len(t, args, 26)
					assert.Equal(t, b.ID(), args[0])
					return pgconn.NewCommandTag("INSERT 0 1"), tc.execErr
				})

			err := repo.Insert(ctx, b)

			if tc.expectKind == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, infra.IsKind(err, tc.expectKind))
		})
	}
}

// =============================================================================
// Lookup Tests
// =============================================================================

func TestBookingRepository_LockByID(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the row", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := repositorymock.NewMockDBTX(ctrl)
		repo := repository.NewBookingRepository(db, slog.Default())
		id := uuid.New()

		db.EXPECT().QueryRow(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sql string, args ...any) pgx.Row {
				assert.True(t, strings.HasSuffix(sql, "FOR UPDATE"))
				assert.Equal(t, []any{id.String()}, args)
				return noRows()
			})

		_, err := repo.LockByID(ctx, id)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("plain lookup does not lock", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		db := repositorymock.NewMockDBTX(ctrl)
		repo := repository.NewBookingRepository(db, slog.Default())

		db.EXPECT().QueryRow(ctx, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, sql string, _ ...any) pgx.Row {
				assert.NotContains(t, sql, "FOR UPDATE")
				return stubRow{scan: func(...any) error { return errors.New("broken pipe") }}
			})

		_, err := repo.BookingByID(ctx, uuid.New())
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// =============================================================================
// UpdateStatus Tests
// =============================================================================

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		tag        string
		execErr    error
		expectKind infra.RepositoryErrorKind
	}{
		{name: "success: status written", tag: "UPDATE 1"},
		{name: "error: row vanished", tag: "UPDATE 0", expectKind: infra.KindNotFound},
		{
			name:       "error: reactivation overlaps",
			execErr:    &pgconn.PgError{Code: "23P01"},
			expectKind: infra.KindConflict,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			db := repositorymock.NewMockDBTX(ctrl)
			repo := repository.NewBookingRepository(db, slog.Default())
			b := builder.NewBookingBuilder().WithStatus(reservation.StatusConfirmed).Build()

			db.EXPECT().Exec(ctx, gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
					assert.True(t, strings.HasPrefix(sql, "UPDATE bookings SET status = $1"))
					assert.Equal(t, "confirmed", args[0])
					return pgconn.NewCommandTag(tc.tag), tc.execErr
				})

			err := repo.UpdateStatus(ctx, b)

			if tc.expectKind == "" {
				require.NoError(t, err)
				return
			}
			assert.True(t, infra.IsKind(err, tc.expectKind))
		})
	}
}
