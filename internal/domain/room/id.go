package room

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

var (
	ErrEmptyRoomID       = errors.New("room id cannot be empty")
	ErrUnsupportedRoomID = errors.New("room id must be a string or an integral number")
)

// ID is the canonical room identifier. Feeds deliver it as string or number;
// NormalizeID is applied once at the boundary so the core only sees strings.
type ID string

func NormalizeID(v any) (ID, error) {
	var s string
	switch t := v.(type) {
	case ID:
		s = string(t)
	case string:
		s = t
	case json.Number:
		s = t.String()
		if strings.ContainsAny(s, ".eE") {
			f, err := t.Float64()
			if err != nil {
				return "", ErrUnsupportedRoomID
			}
			return normalizeFloat(f)
		}
	case int:
		s = strconv.FormatInt(int64(t), 10)
	case int32:
		s = strconv.FormatInt(int64(t), 10)
	case int64:
		s = strconv.FormatInt(t, 10)
	case uint:
		s = strconv.FormatUint(uint64(t), 10)
	case uint32:
		s = strconv.FormatUint(uint64(t), 10)
	case uint64:
		s = strconv.FormatUint(t, 10)
	case float32:
		return normalizeFloat(float64(t))
	case float64:
		return normalizeFloat(t)
	default:
		return "", ErrUnsupportedRoomID
	}

	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrEmptyRoomID
	}
	return ID(s), nil
}

func normalizeFloat(f float64) (ID, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return "", ErrUnsupportedRoomID
	}
	return ID(strconv.FormatInt(int64(f), 10)), nil
}

func (id ID) String() string { return string(id) }
