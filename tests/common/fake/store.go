//go:build unit

package fake

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// CheckoutStore is an in-memory shared.CheckoutRepository. Drafts are kept as JSON
// so a loaded draft never aliases the stored one, the same as the redis store.
type CheckoutStore struct {
	mu      sync.Mutex
	carts   map[uuid.UUID][]byte
	drafts  map[uuid.UUID][]byte
	refunds map[uuid.UUID]shared.PendingRefund

	SaveErr error
	MarkErr error
}

func NewCheckoutStore() *CheckoutStore {
	return &CheckoutStore{
		carts:   map[uuid.UUID][]byte{},
		drafts:  map[uuid.UUID][]byte{},
		refunds: map[uuid.UUID]shared.PendingRefund{},
	}
}

func (s *CheckoutStore) LoadCart(_ context.Context, sessionID uuid.UUID) ([]reservation.DraftSelection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.carts[sessionID]
	if !ok {
		return nil, nil
	}
	var items []reservation.DraftSelection
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *CheckoutStore) SaveCart(_ context.Context, sessionID uuid.UUID, items []reservation.DraftSelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.carts[sessionID] = raw
	return nil
}

func (s *CheckoutStore) ClearCart(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
	return nil
}

func (s *CheckoutStore) Load(_ context.Context, sessionID uuid.UUID) (*checkout.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.drafts[sessionID]
	if !ok {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "checkout draft not found", nil)
	}
	var d checkout.Draft
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *CheckoutStore) Save(_ context.Context, d *checkout.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	raw, err := json.Marshal(d)
	if err != nil {
		return err
	}
	s.drafts[d.SessionID] = raw
	return nil
}

func (s *CheckoutStore) Delete(_ context.Context, sessionID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

func (s *CheckoutStore) MarkRefundPending(_ context.Context, r shared.PendingRefund) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MarkErr != nil {
		return s.MarkErr
	}
	s.refunds[r.TicketID] = r
	return nil
}

func (s *CheckoutStore) PendingRefunds(_ context.Context) ([]shared.PendingRefund, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.PendingRefund, 0, len(s.refunds))
	for _, r := range s.refunds {
		out = append(out, r)
	}
	return out, nil
}

func (s *CheckoutStore) ClearRefundPending(_ context.Context, ticketID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.refunds, ticketID)
	return nil
}

// HasDraft reports whether the session still has a stored draft.
func (s *CheckoutStore) HasDraft(sessionID uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drafts[sessionID]
	return ok
}
