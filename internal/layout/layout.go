// Package layout assigns overlapping time-ranged items to side-by-side
// columns for day and week calendar rendering. Items are partitioned into
// collision groups (maximal chains of pairwise overlaps), then packed
// greedily first-fit so that no two items in a column overlap. The number
// of columns opened for a group equals its peak concurrency, which is
// minimal for interval graphs.
package layout

import (
	"sort"
	"time"
)

// Item is a half-open interval [Start, End) with an opaque identifier.
// Intervals where Start is after End are normalized by swapping; the
// algorithm never fails on malformed input.
type Item struct {
	ID    string
	Start time.Time
	End   time.Time
}

// Placement records where a single item landed: a zero-based column index,
// the total column count of its collision group, and the group's ordinal.
// Every item in the same group shares the same TotalColumns.
type Placement struct {
	ID           string
	Column       int
	TotalColumns int
	Group        int
}

// Span is a merged busy interval covering one collision group.
type Span struct {
	Start time.Time
	End   time.Time
}

// Layout computes column placements for the given items. The input is not
// mutated; results are ordered by start time (ties by descending end, then
// input order), one placement per input item. Empty input yields an empty
// slice.
func Layout(items []Item) []Placement {
	if len(items) == 0 {
		return nil
	}

	order := sortedOrder(items)

	placements := make([]Placement, 0, len(items))
	group := 0

	// Scan groups: a new group opens when an item starts at or after
	// everything seen so far has ended.
	groupStart := 0
	groupEnd := endOf(items[order[0]])
	for i := 1; i <= len(order); i++ {
		if i < len(order) && startOf(items[order[i]]).Before(groupEnd) {
			if e := endOf(items[order[i]]); e.After(groupEnd) {
				groupEnd = e
			}
			continue
		}
		placements = append(placements, placeGroup(items, order[groupStart:i], group)...)
		group++
		if i < len(order) {
			groupStart = i
			groupEnd = endOf(items[order[i]])
		}
	}

	return placements
}

// Spans returns the merged busy intervals of the input, one per collision
// group, in chronological order.
func Spans(items []Item) []Span {
	if len(items) == 0 {
		return nil
	}

	order := sortedOrder(items)

	var spans []Span
	cur := Span{Start: startOf(items[order[0]]), End: endOf(items[order[0]])}
	for _, idx := range order[1:] {
		s, e := startOf(items[idx]), endOf(items[idx])
		if s.Before(cur.End) {
			if e.After(cur.End) {
				cur.End = e
			}
			continue
		}
		spans = append(spans, cur)
		cur = Span{Start: s, End: e}
	}
	return append(spans, cur)
}

// placeGroup runs greedy first-fit column assignment over one collision
// group. Columns are reused as soon as their last occupant has ended;
// an item opens a new column only when no existing column can take it.
func placeGroup(items []Item, order []int, group int) []Placement {
	var columnEnds []time.Time
	out := make([]Placement, 0, len(order))

	for _, idx := range order {
		s, e := startOf(items[idx]), endOf(items[idx])

		col := -1
		for c, lastEnd := range columnEnds {
			if !lastEnd.After(s) {
				col = c
				break
			}
		}
		if col == -1 {
			col = len(columnEnds)
			columnEnds = append(columnEnds, e)
		} else {
			columnEnds[col] = e
		}

		out = append(out, Placement{ID: items[idx].ID, Column: col, Group: group})
	}

	// TotalColumns is only known once the whole group is placed; assigning
	// it earlier would undercount when later items open extra columns.
	total := len(columnEnds)
	for i := range out {
		out[i].TotalColumns = total
	}
	return out
}

// sortedOrder returns item indices sorted by normalized start ascending.
// Start ties are broken by descending end, so a containing interval extends
// the group end before a zero-duration item at the same instant is scanned;
// otherwise the instant item would close the group early and grouping would
// depend on input order. Remaining ties keep input position.
func sortedOrder(items []Item) []int {
	order := make([]int, len(items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		sa, sb := startOf(items[order[a]]), startOf(items[order[b]])
		if !sa.Equal(sb) {
			return sa.Before(sb)
		}
		return endOf(items[order[a]]).After(endOf(items[order[b]]))
	})
	return order
}

func startOf(it Item) time.Time {
	if it.Start.After(it.End) {
		return it.End
	}
	return it.Start
}

func endOf(it Item) time.Time {
	if it.Start.After(it.End) {
		return it.Start
	}
	return it.End
}
