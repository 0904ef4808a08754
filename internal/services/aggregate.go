// Package services holds the derived-data engine: grouping, scoring,
// and state transitions over a core.Snapshot. Everything here is a pure
// function of its inputs; handlers and workers call in, nothing calls
// out.
package services

import (
	"sort"

	"opsboard/internal/core"
)

// GroupBy buckets records under a fixed, caller-supplied enumeration of
// keys, preserving input order within each bucket. Every enumerated key
// maps to a group, empty when nothing matched, so board columns for
// quiet stages still render a zero. Records whose key is not in the
// enumeration are returned in the second value; they are never silently
// dropped.
func GroupBy[T any, K comparable](records []T, keys []K, keyOf func(T) K) (map[K][]T, []T) {
	groups := make(map[K][]T, len(keys))
	for _, k := range keys {
		groups[k] = []T{}
	}
	var other []T
	for _, r := range records {
		k := keyOf(r)
		if _, ok := groups[k]; !ok {
			other = append(other, r)
			continue
		}
		groups[k] = append(groups[k], r)
	}
	return groups, other
}

// Filter returns the records matching pred, in input order.
func Filter[T any](records []T, pred func(T) bool) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of records matching pred.
func Count[T any](records []T, pred func(T) bool) int {
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// SortByRank stable-sorts a copy of records by a caller-supplied rank
// over a finite enum; ties keep their original relative order.
func SortByRank[T any](records []T, rankOf func(T) int) []T {
	out := append([]T(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return rankOf(out[i]) < rankOf(out[j])
	})
	return out
}

// complianceRank orders OVERDUE before PENDING before DONE.
var complianceRank = map[core.ComplianceStatus]int{
	core.StatusOverdue: 0,
	core.StatusPending: 1,
	core.StatusDone:    2,
}

// SortCompliance orders items by urgency, stable within each status.
// Unknown statuses sink to the end rather than interleaving.
func SortCompliance(items []core.ComplianceItem) []core.ComplianceItem {
	return SortByRank(items, func(i core.ComplianceItem) int {
		if r, ok := complianceRank[i.Status]; ok {
			return r
		}
		return len(complianceRank)
	})
}

// StageColumn is one pipeline board column: the records plus the
// pre-summed value so totals never re-round per card.
type StageColumn[T any] struct {
	Records []T
	Count   int
	Total   core.Money
}

// DealBoard groups deals into the fixed stage columns, summing values
// exactly in cents. Deals carrying an unenumerated stage land in Other.
func DealBoard(deals []core.Deal) (map[core.DealStage]StageColumn[core.Deal], []core.Deal) {
	groups, other := GroupBy(deals, core.DealStages, func(d core.Deal) core.DealStage { return d.Stage })
	board := make(map[core.DealStage]StageColumn[core.Deal], len(groups))
	for stage, ds := range groups {
		col := StageColumn[core.Deal]{Records: ds, Count: len(ds)}
		for _, d := range ds {
			col.Total = col.Total.Add(d.Value)
		}
		board[stage] = col
	}
	return board, other
}

// OpenDealCount is the badge figure: deals not yet WON or LOST.
func OpenDealCount(deals []core.Deal) int {
	return Count(deals, func(d core.Deal) bool { return d.Stage.Open() })
}

// VentureBoard groups ventures by stage.
func VentureBoard(ventures []core.Venture) (map[core.VentureStage][]core.Venture, []core.Venture) {
	return GroupBy(ventures, core.VentureStages, func(v core.Venture) core.VentureStage { return v.Stage })
}

// StudioBoard groups studio projects by stage.
func StudioBoard(projects []core.StudioProject) (map[core.StudioStage][]core.StudioProject, []core.StudioProject) {
	return GroupBy(projects, core.StudioStages, func(p core.StudioProject) core.StudioStage { return p.Stage })
}

// ClientBuckets groups clients by relationship status.
func ClientBuckets(clients []core.Client) (map[core.ClientStatus][]core.Client, []core.Client) {
	return GroupBy(clients, core.ClientStatuses, func(c core.Client) core.ClientStatus { return c.Status })
}

// ComplianceByCategory groups items by category, each group sorted by
// urgency.
func ComplianceByCategory(items []core.ComplianceItem) (map[core.ComplianceCategory][]core.ComplianceItem, []core.ComplianceItem) {
	groups, other := GroupBy(items, core.ComplianceCategories, func(i core.ComplianceItem) core.ComplianceCategory { return i.Category })
	for cat, group := range groups {
		groups[cat] = SortCompliance(group)
	}
	return groups, other
}

// ActivitiesByArea groups weekly activities by focus area.
func ActivitiesByArea(activities []core.WeeklyActivity) (map[core.FocusArea][]core.WeeklyActivity, []core.WeeklyActivity) {
	return GroupBy(activities, core.FocusAreas, func(a core.WeeklyActivity) core.FocusArea { return a.FocusArea })
}
