//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// SeedLoyaltyAccount creates or overwrites the account balance for userID.
func SeedLoyaltyAccount(t *testing.T, db DBLike, userID uuid.UUID, points int, tier string) {
	t.Helper()

	_, err := db.Exec(context.Background(), `
		INSERT INTO loyalty_accounts (user_id, points, star_tier) VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE SET points = EXCLUDED.points, star_tier = EXCLUDED.star_tier`,
		userID, points, tier)
	require.NoError(t, err)
}

func LoyaltyPoints(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var points int
	err := db.QueryRow(context.Background(), "SELECT points FROM loyalty_accounts WHERE user_id = $1", userID).Scan(&points)
	require.NoError(t, err)
	return points
}

// CountLedgerRecords counts rows written for userID across both ledger tables.
func CountLedgerRecords(t *testing.T, db DBLike, userID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), `
		SELECT (SELECT COUNT(*) FROM loyalty_redemptions WHERE user_id = $1)
		     + (SELECT COUNT(*) FROM loyalty_exchanges WHERE user_id = $1)`, userID).Scan(&n)
	require.NoError(t, err)
	return n
}

func BookingStatus(t *testing.T, db DBLike, bookingID uuid.UUID) string {
	t.Helper()

	var status string
	err := db.QueryRow(context.Background(), "SELECT status FROM bookings WHERE id = $1", bookingID).Scan(&status)
	require.NoError(t, err)
	return status
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all application tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
