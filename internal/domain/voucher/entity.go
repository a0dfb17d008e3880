package voucher

import (
	"errors"
	"time"

	"wellness-booking/internal/domain/money"
)

var (
	ErrVoucherExpired        = errors.New("voucher has expired")
	ErrVoucherNotYetValid    = errors.New("voucher is not yet valid")
	ErrVoucherMinOrderNotMet = errors.New("order total is below the voucher minimum")
	ErrInvalidValidityWindow = errors.New("voucher validity window is inverted")
	ErrInvalidMinOrder       = errors.New("voucher minimum order cannot be negative")
)

const dayLayout = "2006-01-02"

// Voucher is read-only reference data from the catalog feed.
type Voucher struct {
	code      Code
	discount  Discount
	minOrder  *money.Money
	validFrom *time.Time
	validTo   *time.Time
}

type Params struct {
	Code              string
	DiscountType      string
	DiscountValue     int64
	MinOrderValue     *int64
	MaxDiscountAmount *int64
	ValidFrom         *time.Time
	ValidTo           *time.Time
}

func NewVoucher(p Params) (*Voucher, error) {
	code, err := NewCode(p.Code)
	if err != nil {
		return nil, err
	}

	kind, err := ParseDiscountType(p.DiscountType)
	if err != nil {
		return nil, err
	}

	discount, err := NewDiscount(kind, p.DiscountValue, p.MaxDiscountAmount)
	if err != nil {
		return nil, err
	}

	v := &Voucher{
		code:      code,
		discount:  discount,
		validFrom: p.ValidFrom,
		validTo:   p.ValidTo,
	}

	if p.MinOrderValue != nil {
		minOrder, err := money.New(*p.MinOrderValue)
		if err != nil {
			return nil, ErrInvalidMinOrder
		}
		v.minOrder = &minOrder
	}

	if p.ValidFrom != nil && p.ValidTo != nil && p.ValidTo.Before(*p.ValidFrom) {
		return nil, ErrInvalidValidityWindow
	}

	return v, nil
}

// ValidateUsage checks the validity window at day granularity in loc. Each bound
// is enforced on its own when present.
func (v *Voucher) ValidateUsage(now time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}
	today := now.In(loc).Format(dayLayout)
	if v.validFrom != nil && today < v.validFrom.In(loc).Format(dayLayout) {
		return ErrVoucherNotYetValid
	}
	if v.validTo != nil && today > v.validTo.In(loc).Format(dayLayout) {
		return ErrVoucherExpired
	}
	return nil
}

// DiscountFor returns the discount on subtotal, or an error explaining why the voucher
// does not apply. A rejected voucher never yields a partial discount.
func (v *Voucher) DiscountFor(subtotal money.Money, now time.Time, loc *time.Location) (money.Money, error) {
	if err := v.ValidateUsage(now, loc); err != nil {
		return 0, err
	}
	if v.minOrder != nil && subtotal < *v.minOrder {
		return 0, ErrVoucherMinOrderNotMet
	}
	return v.discount.Amount(subtotal), nil
}

func (v *Voucher) Code() Code             { return v.code }
func (v *Voucher) Discount() Discount     { return v.discount }
func (v *Voucher) MinOrder() *money.Money { return v.minOrder }
func (v *Voucher) ValidFrom() *time.Time  { return v.validFrom }
func (v *Voucher) ValidTo() *time.Time    { return v.validTo }
