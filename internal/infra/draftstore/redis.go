package draftstore

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	cartPrefix     = "cart:"
	checkoutPrefix = "checkout:"
	pendingRefunds = "checkout:refunds:pending"
)

// RedisStore is the cross-page channel. Every write replaces the whole blob.
type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

func cartKey(sessionID uuid.UUID) string     { return cartPrefix + sessionID.String() }
func checkoutKey(sessionID uuid.UUID) string { return checkoutPrefix + sessionID.String() }

func (s *RedisStore) LoadCart(ctx context.Context, sessionID uuid.UUID) ([]reservation.DraftSelection, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to load cart", err)
	}

	var items []reservation.DraftSelection
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to decode cart", err)
	}
	return items, nil
}

func (s *RedisStore) SaveCart(ctx context.Context, sessionID uuid.UUID, items []reservation.DraftSelection) error {
	if len(items) == 0 {
		return s.ClearCart(ctx, sessionID)
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to encode cart", err)
	}
	if err := s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to save cart", err)
	}
	return nil
}

func (s *RedisStore) ClearCart(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to clear cart", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID uuid.UUID) (*checkout.Draft, error) {
	raw, err := s.client.Get(ctx, checkoutKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "checkout draft not found", err)
		}
		return nil, infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to load checkout draft", err)
	}

	var d checkout.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to decode checkout draft", err)
	}
	return &d, nil
}

// Save keeps a draft that still owes a refund until the reconciler clears it.
func (s *RedisStore) Save(ctx context.Context, d *checkout.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to encode checkout draft", err)
	}

	ttl := s.ttl
	if d.RefundPending {
		ttl = 0
	}

	if err := s.client.Set(ctx, checkoutKey(d.SessionID), raw, ttl).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to save checkout draft", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID uuid.UUID) error {
	if err := s.client.Del(ctx, checkoutKey(sessionID)).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to delete checkout draft", err)
	}
	return nil
}

func (s *RedisStore) MarkRefundPending(ctx context.Context, r shared.PendingRefund) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to encode pending refund", err)
	}
	if err := s.client.HSet(ctx, pendingRefunds, r.TicketID.String(), raw).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to register pending refund", err)
	}
	return nil
}

func (s *RedisStore) PendingRefunds(ctx context.Context) ([]shared.PendingRefund, error) {
	entries, err := s.client.HGetAll(ctx, pendingRefunds).Result()
	if err != nil {
		return nil, infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to list pending refunds", err)
	}

	out := make([]shared.PendingRefund, 0, len(entries))
	for ticket, raw := range entries {
		var r shared.PendingRefund
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			s.logger.Warn("skipping unreadable pending refund", "ticket_id", ticket, "error", err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (s *RedisStore) ClearRefundPending(ctx context.Context, ticketID uuid.UUID) error {
	if err := s.client.HDel(ctx, pendingRefunds, ticketID.String()).Err(); err != nil {
		return infra.WrapRepoErr(s.logger, infra.KindCacheFailure, "failed to clear pending refund", err)
	}
	return nil
}
