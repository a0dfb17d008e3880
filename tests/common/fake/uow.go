//go:build unit

package fake

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"wellness-booking/internal/domain/booking"
	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/infra"
	"wellness-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// UnitOfWork is an in-memory shared.UnitOfWork. A callback that returns an error
// rolls back every booking and ledger write it made.
type UnitOfWork struct {
	mu sync.Mutex

	BookingRepo *BookingRepo
	LedgerRepo  *LedgerRepo

	// BeginErr fails the next transaction before the callback runs.
	BeginErr error
	Txs      int
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		BookingRepo: NewBookingRepo(),
		LedgerRepo:  NewLedgerRepo(),
	}
}

func (u *UnitOfWork) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.BeginErr; err != nil {
		u.BeginErr = nil
		return err
	}
	u.Txs++

	bookings := u.BookingRepo.snapshot()
	ledger := u.LedgerRepo.snapshot()
	if err := fn(ctx, tx{u}); err != nil {
		u.BookingRepo.restore(bookings)
		u.LedgerRepo.restore(ledger)
		return err
	}
	return nil
}

func (u *UnitOfWork) WithinSerializable(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.Within(ctx, fn)
}

func (u *UnitOfWork) CommandReads() shared.CommandReads {
	return u.BookingRepo
}

type tx struct{ u *UnitOfWork }

func (t tx) Bookings() shared.BookingRepository { return t.u.BookingRepo }
func (t tx) Ledger() shared.LedgerRepository    { return t.u.LedgerRepo }
func (t tx) Reads() shared.CommandReads         { return t.u.BookingRepo }

// BookingRepo keeps snapshots so callers never share a *booking.Booking with it.
// Insert enforces the no-overlap rule the database exclusion constraint does.
type BookingRepo struct {
	mu    sync.Mutex
	rows  map[uuid.UUID]booking.Snapshot
	order []uuid.UUID

	InsertErr error
}

func NewBookingRepo() *BookingRepo {
	return &BookingRepo{rows: map[uuid.UUID]booking.Snapshot{}}
}

func (r *BookingRepo) Seed(b *booking.Booking) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(b.Snapshot())
}

func (r *BookingRepo) All() []*booking.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*booking.Booking, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, booking.Reconstruct(r.rows[id]))
	}
	return out
}

func (r *BookingRepo) Insert(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertErr != nil {
		return r.InsertErr
	}
	for _, s := range r.rows {
		if s.RoomID == b.RoomID() && s.Status.IsActive() && s.Interval.Overlaps(b.Interval()) {
			return infra.WrapRepoErr(slog.Default(), infra.KindConflict, "booking overlaps an active booking", nil)
		}
	}
	r.put(b.Snapshot())
	return nil
}

func (r *BookingRepo) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.BookingByID(ctx, id)
}

func (r *BookingRepo) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "booking not found", nil)
	}
	return booking.Reconstruct(s), nil
}

func (r *BookingRepo) UpdateStatus(_ context.Context, b *booking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[b.ID()]; !ok {
		return infra.WrapRepoErr(slog.Default(), infra.KindNotFound, "booking not found", nil)
	}
	r.put(b.Snapshot())
	return nil
}

func (r *BookingRepo) ActiveOccupancy(_ context.Context, roomID room.ID, date reservation.Date) ([]reservation.Occupancy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []reservation.Occupancy
	for _, id := range r.order {
		s := r.rows[id]
		if s.RoomID == roomID && s.Interval.Date == date && s.Status.IsActive() {
			out = append(out, booking.Reconstruct(s).Occupancy())
		}
	}
	return out, nil
}

func (r *BookingRepo) put(s booking.Snapshot) {
	if _, ok := r.rows[s.ID]; !ok {
		r.order = append(r.order, s.ID)
	}
	r.rows[s.ID] = s
}

type bookingState struct {
	rows  map[uuid.UUID]booking.Snapshot
	order []uuid.UUID
}

func (r *BookingRepo) snapshot() bookingState {
	r.mu.Lock()
	defer r.mu.Unlock()
	rows := make(map[uuid.UUID]booking.Snapshot, len(r.rows))
	for k, v := range r.rows {
		rows[k] = v
	}
	return bookingState{rows: rows, order: append([]uuid.UUID(nil), r.order...)}
}

func (r *BookingRepo) restore(s bookingState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = s.rows
	r.order = s.order
}

var ErrLedgerDown = errors.New("ledger unavailable")

// LedgerRepo holds balances and the append-only record log.
type LedgerRepo struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int
	tiers    map[uuid.UUID]loyalty.StarTier
	records  map[string]loyalty.Record
	log      []loyalty.Record

	// Fail is consulted before each append; a non-nil result aborts the step.
	Fail func(rec loyalty.Record) error
}

func NewLedgerRepo() *LedgerRepo {
	return &LedgerRepo{
		balances: map[uuid.UUID]int{},
		tiers:    map[uuid.UUID]loyalty.StarTier{},
		records:  map[string]loyalty.Record{},
	}
}

func (l *LedgerRepo) Seed(userID uuid.UUID, points int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] = points
	l.tiers[userID] = loyalty.TierFor(points)
}

func (l *LedgerRepo) Balance(userID uuid.UUID) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[userID]
}

func (l *LedgerRepo) Records() []loyalty.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]loyalty.Record(nil), l.log...)
}

// FailRefunds makes every refund append fail until the returned func is called.
func (l *LedgerRepo) FailRefunds() (heal func()) {
	l.mu.Lock()
	l.Fail = func(rec loyalty.Record) error {
		if rec.Kind == loyalty.KindRefund {
			return ErrLedgerDown
		}
		return nil
	}
	l.mu.Unlock()
	return func() {
		l.mu.Lock()
		l.Fail = nil
		l.mu.Unlock()
	}
}

func (l *LedgerRepo) LockAccount(_ context.Context, userID uuid.UUID) (loyalty.Account, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tier, ok := l.tiers[userID]
	if !ok {
		tier = loyalty.TierMember
	}
	return loyalty.Account{UserID: userID, AvailablePoints: l.balances[userID], StarTier: tier}, nil
}

func (l *LedgerRepo) HasRecord(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.records[key]
	return ok, nil
}

func (l *LedgerRepo) SetBalance(_ context.Context, userID uuid.UUID, points int, tier loyalty.StarTier) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[userID] = points
	l.tiers[userID] = tier
	return nil
}

func (l *LedgerRepo) AppendRecord(_ context.Context, _ uuid.UUID, rec loyalty.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.Fail != nil {
		if err := l.Fail(rec); err != nil {
			return err
		}
	}
	if _, dup := l.records[rec.Key]; dup {
		return infra.WrapRepoErr(slog.Default(), infra.KindDuplicateKey, "ledger record already exists", nil)
	}
	l.records[rec.Key] = rec
	l.log = append(l.log, rec)
	return nil
}

type ledgerState struct {
	balances map[uuid.UUID]int
	tiers    map[uuid.UUID]loyalty.StarTier
	records  map[string]loyalty.Record
	log      []loyalty.Record
}

func (l *LedgerRepo) snapshot() ledgerState {
	l.mu.Lock()
	defer l.mu.Unlock()
	s := ledgerState{
		balances: make(map[uuid.UUID]int, len(l.balances)),
		tiers:    make(map[uuid.UUID]loyalty.StarTier, len(l.tiers)),
		records:  make(map[string]loyalty.Record, len(l.records)),
		log:      append([]loyalty.Record(nil), l.log...),
	}
	for k, v := range l.balances {
		s.balances[k] = v
	}
	for k, v := range l.tiers {
		s.tiers[k] = v
	}
	for k, v := range l.records {
		s.records[k] = v
	}
	return s
}

func (l *LedgerRepo) restore(s ledgerState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances = s.balances
	l.tiers = s.tiers
	l.records = s.records
	l.log = s.log
}
