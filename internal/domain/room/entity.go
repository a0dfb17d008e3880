package room

import (
	"errors"
	"strings"

	"wellness-booking/internal/domain/money"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity = errors.New("room capacity range is invalid")
	ErrNegativePrice   = errors.New("room price cannot be negative")
)

const (
	MaxRoomNameLength = 255
)

// Room is immutable reference data from the catalog feed.
type Room struct {
	id           ID
	name         string
	minCapacity  int
	maxCapacity  int
	pricePerHour money.Money
}

func NewRoom(rawID any, name string, minCapacity, maxCapacity int, pricePerHour int64) (*Room, error) {
	id, err := NormalizeID(rawID)
	if err != nil {
		return nil, err
	}

	if err := validateRoomName(name); err != nil {
		return nil, err
	}

	if minCapacity < 0 || (maxCapacity > 0 && maxCapacity < minCapacity) {
		return nil, ErrInvalidCapacity
	}

	price, err := money.New(pricePerHour)
	if err != nil {
		return nil, ErrNegativePrice
	}

	return &Room{
		id:           id,
		name:         strings.TrimSpace(name),
		minCapacity:  minCapacity,
		maxCapacity:  maxCapacity,
		pricePerHour: price,
	}, nil
}

func validateRoomName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	return nil
}

// PriceFor returns floor(pricePerHour * minutes / 60).
func (r *Room) PriceFor(minutes int) money.Money {
	if minutes <= 0 {
		return 0
	}
	return money.Money(r.pricePerHour.Int64() * int64(minutes) / 60)
}

func (r *Room) ID() ID                    { return r.id }
func (r *Room) Name() string              { return r.name }
func (r *Room) MinCapacity() int          { return r.minCapacity }
func (r *Room) MaxCapacity() int          { return r.maxCapacity }
func (r *Room) PricePerHour() money.Money { return r.pricePerHour }
