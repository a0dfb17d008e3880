package loyalty

import (
	"errors"
	"strings"
	"time"

	"wellness-booking/internal/domain/money"

	"github.com/google/uuid"
)

const (
	// RedemptionCost is the fixed number of points spent per redemption.
	RedemptionCost = 50
	// RedemptionValue is the currency discount a redemption buys.
	RedemptionValue money.Money = 20_000
	// AccrualUnit is the amount of final total that earns one point.
	AccrualUnit money.Money = 1_000

	DefaultTicketTTL = 2 * time.Minute
)

var (
	ErrInsufficientPoints = errors.New("not enough loyalty points to redeem")
	ErrNegativePoints     = errors.New("loyalty points cannot be negative")
	ErrTicketExpired      = errors.New("redemption ticket has expired")
	ErrTicketMismatch     = errors.New("redemption ticket does not belong to this checkout")
	ErrTicketSettled      = errors.New("redemption ticket was already refunded")
)

type StarTier string

const (
	TierMember StarTier = "member"
	TierSilver StarTier = "silver"
	TierGold   StarTier = "gold"
)

// TierFor maps a point balance to a tier.
func TierFor(points int) StarTier {
	switch {
	case points >= 5_000:
		return TierGold
	case points >= 1_000:
		return TierSilver
	default:
		return TierMember
	}
}

type Account struct {
	UserID          uuid.UUID
	AvailablePoints int
	StarTier        StarTier
}

func (a Account) CanRedeem() bool {
	return a.AvailablePoints >= RedemptionCost
}

// Accrual returns floor(total / AccrualUnit).
func Accrual(total money.Money) int {
	if total <= 0 {
		return 0
	}
	return int(total / AccrualUnit)
}

// RedemptionTicket is the first phase of a two-phase redemption. Holding a ticket
// reserves nothing; points move only when the ticket is confirmed.
type RedemptionTicket struct {
	ID        uuid.UUID   `json:"id"`
	Points    int         `json:"points"`
	Discount  money.Money `json:"discount"`
	IssuedAt  time.Time   `json:"issuedAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

func NewRedemptionTicket(account Account, now time.Time, ttl time.Duration) (RedemptionTicket, error) {
	if !account.CanRedeem() {
		return RedemptionTicket{}, ErrInsufficientPoints
	}
	if ttl <= 0 {
		ttl = DefaultTicketTTL
	}
	return RedemptionTicket{
		ID:        uuid.New(),
		Points:    RedemptionCost,
		Discount:  RedemptionValue,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}, nil
}

func (t RedemptionTicket) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

type RecordKind string

const (
	KindRedeem  RecordKind = "redeem"
	KindRefund  RecordKind = "refund"
	KindAccrual RecordKind = "accrual"
)

const (
	redeemPrefix = "redeem:"
	refundPrefix = "refund:"
)

// Record is one audit row. Key makes a ledger write idempotent: a second write
// with the same key is ignored.
type Record struct {
	Key         string
	Kind        RecordKind
	Amount      int
	Description string
	OccurredAt  time.Time
}

func RedeemRecord(ticket RedemptionTicket, now time.Time) Record {
	return Record{
		Key:         redeemPrefix + ticket.ID.String(),
		Kind:        KindRedeem,
		Amount:      ticket.Points,
		Description: "Redeemed 50 points for a checkout discount",
		OccurredAt:  now,
	}
}

func RefundRecord(ticketID uuid.UUID, now time.Time) Record {
	return Record{
		Key:         refundPrefix + ticketID.String(),
		Kind:        KindRefund,
		Amount:      RedemptionCost,
		Description: "Returned 50 points from an abandoned checkout",
		OccurredAt:  now,
	}
}

func AccrualRecord(bookingID uuid.UUID, points int, now time.Time) Record {
	return Record{
		Key:         "accrual:" + bookingID.String(),
		Kind:        KindAccrual,
		Amount:      points,
		Description: "Points earned from a completed booking",
		OccurredAt:  now,
	}
}

// VoidedBy names the record whose presence makes r void. A ticket that was
// refunded cannot be redeemed again.
func (r Record) VoidedBy() string {
	if r.Kind != KindRedeem {
		return ""
	}
	return refundPrefix + strings.TrimPrefix(r.Key, redeemPrefix)
}

// Apply returns the balance after a signed delta.
func Apply(balance, delta int) (int, error) {
	next := balance + delta
	if next < 0 {
		if delta < 0 {
			return balance, ErrInsufficientPoints
		}
		return balance, ErrNegativePoints
	}
	return next, nil
}
