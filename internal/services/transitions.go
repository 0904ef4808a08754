package services

import (
	"slices"

	"opsboard/internal/core"
)

// The original board kept toggle state inside the UI. Here every toggle
// is a pure transition returning the next value; whoever calls decides
// whether and where the result is retained.

// ToggleCompliance flips an item between done and open. An overdue item
// checks off to DONE; unchecking always lands on PENDING since the due
// date needs re-evaluation against the clock.
func ToggleCompliance(item core.ComplianceItem) core.ComplianceItem {
	if item.Status == core.StatusDone {
		item.Status = core.StatusPending
	} else {
		item.Status = core.StatusDone
	}
	return item
}

// activityNext defines the allowed weekly-activity moves.
var activityNext = map[core.ActivityStatus][]core.ActivityStatus{
	core.ActivityPending:    {core.ActivityInProgress, core.ActivityBlocked},
	core.ActivityInProgress: {core.ActivityDone, core.ActivityBlocked},
	core.ActivityBlocked:    {core.ActivityPending, core.ActivityInProgress},
	core.ActivityDone:       {},
}

// AdvanceActivity moves an activity to next if the transition is
// allowed; DONE is terminal.
func AdvanceActivity(a core.WeeklyActivity, next core.ActivityStatus) (core.WeeklyActivity, error) {
	if !next.Valid() {
		return a, core.ErrInvalidStatus
	}
	if !slices.Contains(activityNext[a.Status], next) {
		return a, core.ErrInvalidTransition
	}
	a.Status = next
	return a, nil
}

// ToggleClap adds or removes memberID's clap on a win. Idempotent per
// member: clapping twice returns to the original state.
func ToggleClap(w core.Win, memberID int64) core.Win {
	clappers := append([]int64(nil), w.ClapperIDs...)
	if i := slices.Index(clappers, memberID); i >= 0 {
		clappers = slices.Delete(clappers, i, i+1)
	} else {
		clappers = append(clappers, memberID)
	}
	w.ClapperIDs = clappers
	return w
}

// Claps is the display count for a win.
func Claps(w core.Win) int {
	return len(w.ClapperIDs)
}
