package reservation

import (
	"sort"

	"wellness-booking/internal/domain/money"
	"wellness-booking/internal/domain/room"

	"github.com/google/uuid"
)

type groupKey struct {
	roomID room.ID
	date   Date
}

// Merge consolidates drafts per (room, date). Within a group drafts are swept in start
// order and absorbed while s <= curEnd, so touching windows join. The result is sorted
// by room, date and start, and merging it again returns the same set.
func Merge(drafts []DraftSelection) []ConsolidatedReservation {
	if len(drafts) == 0 {
		return nil
	}

	groups := make(map[groupKey][]DraftSelection)
	keys := make([]groupKey, 0)
	for _, d := range drafts {
		k := groupKey{roomID: d.RoomID, date: d.Interval.Date}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], d)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].roomID != keys[j].roomID {
			return keys[i].roomID < keys[j].roomID
		}
		return keys[i].date.Before(keys[j].date)
	})

	out := make([]ConsolidatedReservation, 0, len(drafts))
	for _, k := range keys {
		out = append(out, sweep(groups[k])...)
	}
	return out
}

func sweep(group []DraftSelection) []ConsolidatedReservation {
	sorted := make([]DraftSelection, len(group))
	copy(sorted, group)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := sorted[i].Interval, sorted[j].Interval
		if a.StartMinute != b.StartMinute {
			return a.StartMinute < b.StartMinute
		}
		if a.EndMinute != b.EndMinute {
			return a.EndMinute < b.EndMinute
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	var (
		out     []ConsolidatedReservation
		current []DraftSelection
		curEnd  int
	)
	for _, d := range sorted {
		if len(current) > 0 && d.Interval.StartMinute <= curEnd {
			current = append(current, d)
			curEnd = max(curEnd, d.Interval.EndMinute)
			continue
		}
		if len(current) > 0 {
			out = append(out, consolidate(current, curEnd))
		}
		current = []DraftSelection{d}
		curEnd = d.Interval.EndMinute
	}
	if len(current) > 0 {
		out = append(out, consolidate(current, curEnd))
	}
	return out
}

func consolidate(members []DraftSelection, end int) ConsolidatedReservation {
	first := members[0]

	var (
		base     money.Money
		services = make([][]ServiceLine, 0, len(members))
		sources  = make([]uuid.UUID, 0, len(members))
		name     string
	)
	for _, m := range members {
		base = base.Add(m.BasePrice)
		services = append(services, m.Services)
		sources = append(sources, m.Sources()...)
		if name == "" {
			name = m.RoomName
		}
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i].String() < sources[j].String() })

	return ConsolidatedReservation{
		RoomID:   first.RoomID,
		RoomName: name,
		Interval: TimeInterval{
			Date:        first.Interval.Date,
			StartMinute: first.Interval.StartMinute,
			EndMinute:   end,
		},
		BasePriceSum: base,
		Services:     AggregateLines(services...),
		SourceIDs:    sources,
	}
}
