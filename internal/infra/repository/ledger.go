package repository

import (
	"context"
	"log/slog"
	"time"

	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/pkg/pgconv"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const (
	accountsTable    = "loyalty_accounts"
	redemptionsTable = "loyalty_redemptions"
	exchangesTable   = "loyalty_exchanges"
)

const hasRecordSQL = `SELECT EXISTS (
	SELECT 1 FROM loyalty_redemptions WHERE record_key = $1
	UNION ALL
	SELECT 1 FROM loyalty_exchanges WHERE record_key = $1
)`

// LedgerRepository keeps redeem and refund rows in loyalty_redemptions and
// accrual rows in loyalty_exchanges. Record keys are unique across both.
type LedgerRepository struct {
	db     DBTX
	logger *slog.Logger
}

func NewLedgerRepository(db DBTX, logger *slog.Logger) *LedgerRepository {
	return &LedgerRepository{db: db, logger: logger}
}

func (r *LedgerRepository) LockAccount(ctx context.Context, userID uuid.UUID) (loyalty.Account, error) {
	ensure, args, err := psql.Insert(accountsTable).
		Columns("user_id", "points", "star_tier").
		Values(userID, 0, string(loyalty.TierMember)).
		Suffix("ON CONFLICT (user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return loyalty.Account{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build account upsert", err)
	}
	if _, err := r.db.Exec(ctx, ensure, args...); err != nil {
		return loyalty.Account{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to ensure loyalty account", err)
	}

	query, args, err := psql.Select("points", "star_tier").
		From(accountsTable).
		Where(sq.Eq{"user_id": userID}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return loyalty.Account{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build account select", err)
	}

	var (
		points int32
		tier   string
	)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&points, &tier); err != nil {
		if pgconv.IsNoRows(err) {
			return loyalty.Account{}, infra.WrapRepoErr(r.logger, infra.KindNotFound, "loyalty account not found", err)
		}
		return loyalty.Account{}, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to lock loyalty account", err)
	}

	return loyalty.Account{
		UserID:          userID,
		AvailablePoints: int(points),
		StarTier:        loyalty.StarTier(tier),
	}, nil
}

func (r *LedgerRepository) HasRecord(ctx context.Context, key string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, hasRecordSQL, key).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to look up ledger record", err)
	}
	return exists, nil
}

func (r *LedgerRepository) SetBalance(ctx context.Context, userID uuid.UUID, points int, tier loyalty.StarTier) error {
	query, args, err := psql.Update(accountsTable).
		Set("points", points).
		Set("star_tier", string(tier)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build balance update", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to update loyalty balance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindNotFound, "loyalty account not found", nil)
	}
	return nil
}

func (r *LedgerRepository) AppendRecord(ctx context.Context, userID uuid.UUID, rec loyalty.Record) error {
	table := redemptionsTable
	if rec.Kind == loyalty.KindAccrual {
		table = exchangesTable
	}

	query, args, err := psql.Insert(table).
		Columns("id", "user_id", "record_key", "kind", "amount", "description", "created_at").
		Values(uuid.New(), userID, rec.Key, string(rec.Kind), rec.Amount, rec.Description, rec.OccurredAt).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to build ledger insert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if pgconv.IsUniqueViolation(err) {
			return infra.WrapRepoErr(r.logger, infra.KindDuplicateKey, "ledger record already written", err)
		}
		return infra.WrapRepoErr(r.logger, infra.KindDBFailure, "failed to append ledger record", err)
	}
	return nil
}
