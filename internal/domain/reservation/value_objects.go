package reservation

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidDate     = errors.New("date must be formatted YYYY-MM-DD")
	ErrInvalidClock    = errors.New("time must be formatted HH:MM")
	ErrInvalidInterval = errors.New("interval must satisfy 0 <= start < end <= 24:00")
)

const (
	MinutesPerDay = 24 * 60
	dateLayout    = "2006-01-02"
)

// Date is a civil calendar date in the venue's timezone.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) IsZero() bool { return d == Date{} }

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }

// At returns the instant minute-of-day minutes after local midnight.
func (d Date) At(loc *time.Location, minute int) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc).Add(time.Duration(minute) * time.Minute)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// TimeInterval is the half-open window [StartMinute, EndMinute) on Date.
type TimeInterval struct {
	Date        Date `json:"date"`
	StartMinute int  `json:"startMinute"`
	EndMinute   int  `json:"endMinute"`
}

func NewTimeInterval(date Date, startMinute, endMinute int) (TimeInterval, error) {
	if date.IsZero() {
		return TimeInterval{}, ErrInvalidDate
	}
	if startMinute < 0 || endMinute > MinutesPerDay || startMinute >= endMinute {
		return TimeInterval{}, ErrInvalidInterval
	}
	return TimeInterval{Date: date, StartMinute: startMinute, EndMinute: endMinute}, nil
}

// ParseTimeInterval accepts "YYYY-MM-DD" plus "HH:MM" bounds.
func ParseTimeInterval(date, start, end string) (TimeInterval, error) {
	d, err := ParseDate(date)
	if err != nil {
		return TimeInterval{}, err
	}
	s, err := ParseClock(start)
	if err != nil {
		return TimeInterval{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return TimeInterval{}, err
	}
	return NewTimeInterval(d, s, e)
}

// Overlaps applies the half-open test a < d && c < b; touching bounds do not overlap.
func (i TimeInterval) Overlaps(o TimeInterval) bool {
	if i.Date != o.Date {
		return false
	}
	return i.StartMinute < o.EndMinute && o.StartMinute < i.EndMinute
}

func (i TimeInterval) Minutes() int { return i.EndMinute - i.StartMinute }

func (i TimeInterval) StartAt(loc *time.Location) time.Time { return i.Date.At(loc, i.StartMinute) }

func (i TimeInterval) EndAt(loc *time.Location) time.Time { return i.Date.At(loc, i.EndMinute) }

func (i TimeInterval) String() string {
	return FormatClock(i.StartMinute) + "-" + FormatClock(i.EndMinute)
}

func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidClock
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidClock
		}
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, ErrInvalidClock
	}
	return h*60 + m, nil
}

// FormatClock renders a minute-of-day as HH:MM; 1440 renders as 24:00.
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
