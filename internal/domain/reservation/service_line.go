package reservation

import (
	"errors"
	"sort"
	"strings"

	"wellness-booking/internal/domain/money"
)

var (
	ErrEmptyServiceName   = errors.New("service must have an id or a name")
	ErrInvalidQuantity    = errors.New("extra service quantity must be between 1 and 10")
	ErrInvalidCategory    = errors.New("service category must be expert or extra")
	ErrNegativeServiceFee = errors.New("service price cannot be negative")
)

const (
	MinExtraQuantity = 1
	MaxExtraQuantity = 10
)

type Category string

const (
	// CategoryExpert lines are on/off selections with quantity fixed at 1.
	CategoryExpert Category = "expert"
	// CategoryExtra lines carry a quantity.
	CategoryExtra Category = "extra"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryExpert, CategoryExtra:
		return c, nil
	default:
		return "", ErrInvalidCategory
	}
}

type ServiceLine struct {
	ID        string      `json:"id,omitempty"`
	Name      string      `json:"name"`
	UnitPrice money.Money `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
	Category  Category    `json:"category"`
}

func NewExpertLine(id, name string, unitPrice int64) (ServiceLine, error) {
	return newServiceLine(id, name, unitPrice, 1, CategoryExpert)
}

func NewExtraLine(id, name string, unitPrice int64, quantity int) (ServiceLine, error) {
	if quantity < MinExtraQuantity || quantity > MaxExtraQuantity {
		return ServiceLine{}, ErrInvalidQuantity
	}
	return newServiceLine(id, name, unitPrice, quantity, CategoryExtra)
}

// NewServiceLine dispatches on category; quantity is ignored for expert lines.
func NewServiceLine(id, name string, unitPrice int64, quantity int, category Category) (ServiceLine, error) {
	switch category {
	case CategoryExpert:
		return NewExpertLine(id, name, unitPrice)
	case CategoryExtra:
		return NewExtraLine(id, name, unitPrice, quantity)
	default:
		return ServiceLine{}, ErrInvalidCategory
	}
}

func newServiceLine(id, name string, unitPrice int64, quantity int, category Category) (ServiceLine, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" && name == "" {
		return ServiceLine{}, ErrEmptyServiceName
	}
	price, err := money.New(unitPrice)
	if err != nil {
		return ServiceLine{}, ErrNegativeServiceFee
	}
	return ServiceLine{ID: id, Name: name, UnitPrice: price, Quantity: quantity, Category: category}, nil
}

// Key is the identity used for deduplication: the id when present, otherwise the folded name.
func (l ServiceLine) Key() string {
	if l.ID != "" {
		return string(l.Category) + ":" + l.ID
	}
	return string(l.Category) + ":" + strings.ToLower(strings.TrimSpace(l.Name))
}

func (l ServiceLine) Total() money.Money {
	return l.UnitPrice.Mul(l.Quantity)
}

// WithQuantity returns a copy; expert lines stay at 1.
func (l ServiceLine) WithQuantity(q int) ServiceLine {
	if l.Category == CategoryExpert {
		l.Quantity = 1
		return l
	}
	l.Quantity = q
	return l
}

func SumLines(lines []ServiceLine) money.Money {
	var total money.Money
	for _, l := range lines {
		total = total.Add(l.Total())
	}
	return total
}

// AggregateLines dedups expert lines by identity and sums extra quantities.
// The first occurrence in canonical order supplies name and unit price.
// Output is sorted by category then key so it does not depend on input order.
func AggregateLines(groups ...[]ServiceLine) []ServiceLine {
	var all []ServiceLine
	for _, g := range groups {
		all = append(all, g...)
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool { return lineLess(all[i], all[j]) })

	index := make(map[string]int, len(all))
	out := make([]ServiceLine, 0, len(all))
	for _, l := range all {
		k := l.Key()
		pos, seen := index[k]
		if !seen {
			index[k] = len(out)
			out = append(out, l.WithQuantity(l.Quantity))
			continue
		}
		if l.Category == CategoryExtra {
			out[pos].Quantity += l.Quantity
		}
	}
	return out
}

func lineLess(a, b ServiceLine) bool {
	if a.Category != b.Category {
		return a.Category < b.Category
	}
	if ka, kb := a.Key(), b.Key(); ka != kb {
		return ka < kb
	}
	if a.UnitPrice != b.UnitPrice {
		return a.UnitPrice < b.UnitPrice
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Quantity < b.Quantity
}
