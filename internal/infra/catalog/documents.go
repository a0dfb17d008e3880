package catalog

import (
	"time"

	"wellness-booking/internal/domain/reservation"
	"wellness-booking/internal/domain/room"
	"wellness-booking/internal/domain/voucher"
)

// Feeds disagree on whether ids are strings or numbers, so ID stays untyped
// until room.NormalizeID has seen it.
type roomDoc struct {
	ID           any    `bson:"_id"`
	Name         string `bson:"name"`
	MinCapacity  int    `bson:"minCapacity"`
	MaxCapacity  int    `bson:"maxCapacity"`
	PricePerHour int64  `bson:"pricePerHour"`
}

type serviceDoc struct {
	ID       any    `bson:"_id"`
	Name     string `bson:"name"`
	Price    int64  `bson:"price"`
	Category string `bson:"category"`
}

type voucherDoc struct {
	Code              string     `bson:"code"`
	DiscountType      string     `bson:"discountType"`
	DiscountValue     int64      `bson:"discountValue"`
	MinOrderValue     *int64     `bson:"minOrderValue,omitempty"`
	MaxDiscountAmount *int64     `bson:"maxDiscountAmount,omitempty"`
	ValidFrom         *time.Time `bson:"validFrom,omitempty"`
	ValidTo           *time.Time `bson:"validTo,omitempty"`
}

func (d roomDoc) toDomain() (*room.Room, error) {
	return room.NewRoom(d.ID, d.Name, d.MinCapacity, d.MaxCapacity, d.PricePerHour)
}

// Extras enter the catalog at quantity 1; the customer picks the real quantity.
func (d serviceDoc) toDomain() (reservation.ServiceLine, error) {
	id, err := room.NormalizeID(d.ID)
	if err != nil {
		return reservation.ServiceLine{}, err
	}
	category, err := reservation.ParseCategory(d.Category)
	if err != nil {
		return reservation.ServiceLine{}, err
	}
	return reservation.NewServiceLine(id.String(), d.Name, d.Price, 1, category)
}

func (d voucherDoc) toDomain() (*voucher.Voucher, error) {
	return voucher.NewVoucher(voucher.Params{
		Code:              d.Code,
		DiscountType:      d.DiscountType,
		DiscountValue:     d.DiscountValue,
		MinOrderValue:     d.MinOrderValue,
		MaxDiscountAmount: d.MaxDiscountAmount,
		ValidFrom:         d.ValidFrom,
		ValidTo:           d.ValidTo,
	})
}
