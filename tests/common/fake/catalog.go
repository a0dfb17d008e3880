//go:build unit

package fake

import (
	"context"
	"log/slog"
	"sync"

	"wellness-booking/internal/domain/checkout"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/domain/voucher"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/usecase/shared"
)

type Catalog struct {
	Data shared.CatalogSnapshot
}

func NewCatalog(data shared.CatalogSnapshot) *Catalog {
	return &Catalog{Data: data}
}

func (c *Catalog) Snapshot(context.Context) shared.CatalogSnapshot {
	return c.Data
}

func (c *Catalog) RoomByID(_ context.Context, id room.ID) (*room.Room, error) {
	for _, r := range c.Data.Rooms {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "room not found", nil)
}

func (c *Catalog) VoucherByCode(_ context.Context, code voucher.Code) (*voucher.Voucher, error) {
	for _, v := range c.Data.Vouchers {
		if v.Code() == code {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "voucher not found", nil)
}

// Publisher records every event it is handed.
type Publisher struct {
	mu     sync.Mutex
	Events []shared.BookingCommitted
	Err    error
}

func (p *Publisher) PublishBookingCommitted(_ context.Context, evt shared.BookingCommitted) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.Err != nil {
		return p.Err
	}
	p.Events = append(p.Events, evt)
	return nil
}

// Metrics counts calls per series.
type Metrics struct {
	mu       sync.Mutex
	Rejected map[string]int
	Finished map[checkout.State]int
	Redeemed int
	Refunds  map[bool]int
}

func NewMetrics() *Metrics {
	return &Metrics{
		Rejected: map[string]int{},
		Finished: map[checkout.State]int{},
		Refunds:  map[bool]int{},
	}
}

func (m *Metrics) SelectionRejected(reason string) {
	m.mu.Lock()
	m.Rejected[reason]++
	m.mu.Unlock()
}

func (m *Metrics) CheckoutFinished(state checkout.State) {
	m.mu.Lock()
	m.Finished[state]++
	m.mu.Unlock()
}

func (m *Metrics) RedemptionConfirmed() {
	m.mu.Lock()
	m.Redeemed++
	m.mu.Unlock()
}

func (m *Metrics) RefundAttempted(ok bool) {
	m.mu.Lock()
	m.Refunds[ok]++
	m.mu.Unlock()
}
