//go:build unit || e2e

package builder

import (
	"time"

	"wellness-booking/internal/domain/voucher"
)

type VoucherBuilder struct {
	Params voucher.Params
}

func NewVoucherBuilder() *VoucherBuilder {
	return &VoucherBuilder{
		Params: voucher.Params{
			Code:          "SPRING10",
			DiscountType:  "percent",
			DiscountValue: 10,
		},
	}
}

func (b *VoucherBuilder) With(mutate func(*voucher.Params)) *VoucherBuilder {
	mutate(&b.Params)
	return b
}

func (b *VoucherBuilder) Fixed(amount int64) *VoucherBuilder {
	b.Params.DiscountType = "fixed"
	b.Params.DiscountValue = amount
	return b
}

func (b *VoucherBuilder) Percent(pct int64, maxDiscount *int64) *VoucherBuilder {
	b.Params.DiscountType = "percent"
	b.Params.DiscountValue = pct
	b.Params.MaxDiscountAmount = maxDiscount
	return b
}

func (b *VoucherBuilder) MinOrder(v int64) *VoucherBuilder {
	b.Params.MinOrderValue = &v
	return b
}

func (b *VoucherBuilder) Window(from, to *time.Time) *VoucherBuilder {
	b.Params.ValidFrom, b.Params.ValidTo = from, to
	return b
}

func (b *VoucherBuilder) BuildDomain() (*voucher.Voucher, error) {
	return voucher.NewVoucher(b.Params)
}

func (b *VoucherBuilder) MustBuild() *voucher.Voucher {
	v, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return v
}

func Int64(v int64) *int64 { return &v }

func Time(t time.Time) *time.Time { return &t }
