package checkout

import (
	"errors"
	"time"

	"wellness-booking/internal/domain/loyalty"
	"wellness-booking/internal/domain/reservation"

	"github.com/google/uuid"
)

var (
	ErrEmptyDraft          = errors.New("checkout has no reservations")
	ErrDraftClosed         = errors.New("checkout is no longer open")
	ErrRedemptionPending   = errors.New("a point redemption is awaiting confirmation")
	ErrAlreadyRedeemed     = errors.New("points are already redeemed for this checkout")
	ErrNotRedeemed         = errors.New("no points are redeemed for this checkout")
	ErrNoPendingRedemption = errors.New("no point redemption is awaiting confirmation")
	ErrUnknownService      = errors.New("service is not offered")
)

type State string

const (
	StateEmpty     State = "empty"
	StateStaged    State = "staged"
	StateCommitted State = "committed"
	StateAbandoned State = "abandoned"
)

func (s State) IsTerminal() bool {
	return s == StateCommitted || s == StateAbandoned
}

// ServiceSelection is one checkout-level catalog entry and whether the customer picked it.
type ServiceSelection struct {
	Line     reservation.ServiceLine `json:"line"`
	Selected bool                    `json:"selected"`
}

// Draft is the cross-page checkout state. Every mutation is followed by a full
// re-serialization by the store, never a partial patch.
type Draft struct {
	SessionID    uuid.UUID                             `json:"sessionId"`
	UserID       uuid.UUID                             `json:"userId"`
	State        State                                 `json:"state"`
	Reservations []reservation.ConsolidatedReservation `json:"reservations"`
	Services     []ServiceSelection                    `json:"services,omitempty"`
	VoucherCode  string                                `json:"voucherCode,omitempty"`
	Contact      ContactInfo                           `json:"contact"`

	PointsRedeemed bool                      `json:"pointsRedeemed"`
	TicketID       *uuid.UUID                `json:"ticketId,omitempty"`
	PendingTicket  *loyalty.RedemptionTicket `json:"pendingTicket,omitempty"`
	// Proceeding is set on the way to payment so the page exit that follows is not
	// taken for an abandonment.
	Proceeding    bool `json:"proceeding"`
	RefundPending bool `json:"refundPending"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewDraft(sessionID, userID uuid.UUID, reservations []reservation.ConsolidatedReservation, now time.Time) (*Draft, error) {
	if len(reservations) == 0 {
		return nil, ErrEmptyDraft
	}
	return &Draft{
		SessionID:    sessionID,
		UserID:       userID,
		State:        StateStaged,
		Reservations: reservations,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func (d *Draft) ensureOpen() error {
	if d.State != StateStaged {
		return ErrDraftClosed
	}
	return nil
}

func (d *Draft) touch(now time.Time) {
	d.UpdatedAt = now
}

func (d *Draft) SelectedServices() []reservation.ServiceLine {
	var lines []reservation.ServiceLine
	for _, s := range d.Services {
		if s.Selected {
			lines = append(lines, s.Line)
		}
	}
	return lines
}

// ToggleService selects or clears a catalog line. Extra lines keep the quantity
// carried by line.
func (d *Draft) ToggleService(line reservation.ServiceLine, selected bool, now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	key := line.Key()
	for i := range d.Services {
		if d.Services[i].Line.Key() == key {
			d.Services[i] = ServiceSelection{Line: line, Selected: selected}
			d.touch(now)
			return nil
		}
	}
	d.Services = append(d.Services, ServiceSelection{Line: line, Selected: selected})
	d.touch(now)
	return nil
}

func (d *Draft) ApplyVoucher(code string, now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	d.VoucherCode = code
	d.touch(now)
	return nil
}

func (d *Draft) RemoveVoucher(now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	d.VoucherCode = ""
	d.touch(now)
	return nil
}

func (d *Draft) SetContact(c ContactInfo, now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}
	d.Contact = c
	d.touch(now)
	return nil
}

// ProposeRedeem holds ticket until it is confirmed or cancelled. An expired
// pending ticket does not block a new one.
func (d *Draft) ProposeRedeem(ticket loyalty.RedemptionTicket, now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if d.PointsRedeemed {
		return ErrAlreadyRedeemed
	}
	if d.PendingTicket != nil && !d.PendingTicket.Expired(now) {
		return ErrRedemptionPending
	}
	d.PendingTicket = &ticket
	d.touch(now)
	return nil
}

// PendingFor returns the outstanding ticket when it matches ticketID and is still live.
func (d *Draft) PendingFor(ticketID uuid.UUID, now time.Time) (loyalty.RedemptionTicket, error) {
	if err := d.ensureOpen(); err != nil {
		return loyalty.RedemptionTicket{}, err
	}
	if d.PendingTicket == nil {
		return loyalty.RedemptionTicket{}, ErrNoPendingRedemption
	}
	if d.PendingTicket.ID != ticketID {
		return loyalty.RedemptionTicket{}, loyalty.ErrTicketMismatch
	}
	if d.PendingTicket.Expired(now) {
		return loyalty.RedemptionTicket{}, loyalty.ErrTicketExpired
	}
	return *d.PendingTicket, nil
}

// ConfirmRedeem records that the ticket's points have left the account.
func (d *Draft) ConfirmRedeem(ticketID uuid.UUID, now time.Time) error {
	ticket, err := d.PendingFor(ticketID, now)
	if err != nil {
		return err
	}
	id := ticket.ID
	d.PointsRedeemed = true
	d.TicketID = &id
	d.PendingTicket = nil
	d.touch(now)
	return nil
}

func (d *Draft) CancelRedeem(ticketID uuid.UUID, now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if d.PendingTicket == nil {
		return ErrNoPendingRedemption
	}
	if d.PendingTicket.ID != ticketID {
		return loyalty.ErrTicketMismatch
	}
	d.PendingTicket = nil
	d.touch(now)
	return nil
}

// UndoRedeem clears a confirmed redemption and returns the ticket that must be refunded.
func (d *Draft) UndoRedeem(now time.Time) (uuid.UUID, error) {
	if err := d.ensureOpen(); err != nil {
		return uuid.Nil, err
	}
	if d.PendingTicket != nil && !d.PendingTicket.Expired(now) {
		return uuid.Nil, ErrRedemptionPending
	}
	if !d.PointsRedeemed || d.TicketID == nil {
		return uuid.Nil, ErrNotRedeemed
	}
	id := *d.TicketID
	d.PointsRedeemed = false
	d.TicketID = nil
	d.PendingTicket = nil
	d.touch(now)
	return id, nil
}

func (d *Draft) ProceedToPayment(now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	d.Proceeding = true
	d.touch(now)
	return nil
}

// Restore rebuilds the service list from a fresh catalog. Only entries saved as
// selected are re-applied; everything else stays at the catalog default. Saved
// selections the catalog does not list are kept as they were, so an empty or
// partial catalog never wipes a customer's choices.
func (d *Draft) Restore(catalog []reservation.ServiceLine, now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	saved := make(map[string]reservation.ServiceLine, len(d.Services))
	for _, s := range d.Services {
		if s.Selected {
			saved[s.Line.Key()] = s.Line
		}
	}

	restored := make([]ServiceSelection, 0, len(catalog)+len(saved))
	matched := make(map[string]bool, len(saved))
	for _, line := range catalog {
		sel := ServiceSelection{Line: line}
		if prev, ok := saved[line.Key()]; ok {
			sel.Selected = true
			matched[line.Key()] = true
			if line.Category == reservation.CategoryExtra {
				sel.Line = line.WithQuantity(prev.Quantity)
			}
		}
		restored = append(restored, sel)
	}
	for _, s := range d.Services {
		if s.Selected && !matched[s.Line.Key()] {
			restored = append(restored, s)
		}
	}

	d.Services = restored
	d.Proceeding = false
	d.touch(now)
	return nil
}

// Leave reports whether a page exit should be treated as abandonment.
func (d *Draft) Leave() bool {
	return d.State == StateStaged && !d.Proceeding
}

// Abandon closes the draft. The returned ticket id, when set, is owed a refund.
func (d *Draft) Abandon(now time.Time) (*uuid.UUID, error) {
	if d.State.IsTerminal() {
		return nil, ErrDraftClosed
	}
	d.State = StateAbandoned
	d.PendingTicket = nil
	d.touch(now)
	if d.PointsRedeemed && d.TicketID != nil {
		d.RefundPending = true
		id := *d.TicketID
		return &id, nil
	}
	return nil, nil
}

// MarkRefunded records a completed compensation for an abandoned draft.
func (d *Draft) MarkRefunded(now time.Time) {
	d.RefundPending = false
	d.PointsRedeemed = false
	d.TicketID = nil
	d.touch(now)
}

// Commit validates what submission needs and closes the draft.
func (d *Draft) Commit(now time.Time) error {
	if err := d.ensureOpen(); err != nil {
		return err
	}
	if len(d.Reservations) == 0 {
		return ErrEmptyDraft
	}
	if d.PendingTicket != nil && !d.PendingTicket.Expired(now) {
		return ErrRedemptionPending
	}
	if err := d.Contact.Validate(); err != nil {
		return err
	}
	d.State = StateCommitted
	d.PendingTicket = nil
	d.Proceeding = false
	d.touch(now)
	return nil
}
