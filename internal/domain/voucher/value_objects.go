package voucher

import (
	"errors"
	"regexp"
	"strings"

	"wellness-booking/internal/domain/money"
)

var (
	ErrInvalidVoucherCode     = errors.New("invalid voucher code format")
	ErrInvalidDiscountType    = errors.New("discount type must be percent or fixed")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var voucherCodeRegex = regexp.MustCompile(`^[A-Z0-9]{3,20}$`)

type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !voucherCodeRegex.MatchString(code) {
		return Code(""), ErrInvalidVoucherCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

func ParseDiscountType(s string) (DiscountType, error) {
	switch t := DiscountType(strings.ToLower(strings.TrimSpace(s))); t {
	case DiscountPercent, DiscountFixed:
		return t, nil
	default:
		return "", ErrInvalidDiscountType
	}
}

type Discount struct {
	kind        DiscountType
	value       int64
	maxDiscount *money.Money
}

func NewPercentageDiscount(percent int64, maxDiscount *int64) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	d := Discount{kind: DiscountPercent, value: percent}
	if maxDiscount != nil {
		capped, err := money.New(*maxDiscount)
		if err != nil {
			return Discount{}, ErrInvalidDiscountAmount
		}
		d.maxDiscount = &capped
	}
	return d, nil
}

func NewFixedDiscount(amount int64) (Discount, error) {
	if amount < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{kind: DiscountFixed, value: amount}, nil
}

func NewDiscount(kind DiscountType, value int64, maxDiscount *int64) (Discount, error) {
	switch kind {
	case DiscountPercent:
		return NewPercentageDiscount(value, maxDiscount)
	case DiscountFixed:
		return NewFixedDiscount(value)
	default:
		return Discount{}, ErrInvalidDiscountType
	}
}

func (d Discount) Type() DiscountType { return d.kind }
func (d Discount) Value() int64       { return d.value }

func (d Discount) MaxDiscount() *money.Money { return d.maxDiscount }

// Amount is floor(subtotal*pct/100) capped at maxDiscount for percent vouchers, or the
// face value for fixed ones. It is not clamped to subtotal; the pricing step does that.
func (d Discount) Amount(subtotal money.Money) money.Money {
	if d.kind == DiscountFixed {
		return money.Money(d.value)
	}
	amount := subtotal.Percent(d.value)
	if d.maxDiscount != nil {
		amount = money.Min(amount, *d.maxDiscount)
	}
	return amount
}
