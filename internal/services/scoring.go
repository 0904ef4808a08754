package services

import (
	"math"
	"time"

	"opsboard/internal/core"
)

// Stage close probabilities in basis points, so pipeline weighting
// stays in integer arithmetic until the final division.
var defaultStageProbability = map[core.DealStage]int64{
	core.StageLead:        1_000,
	core.StageDiscovery:   4_000,
	core.StageProposal:    6_000,
	core.StageNegotiation: 8_000,
	core.StageContracting: 9_000,
	core.StageWon:         10_000,
	core.StageLost:        0,
}

// HealthWeights splits the composite score across the five domains.
// They must sum to 1.
type HealthWeights struct {
	BD       float64
	Ventures float64
	Clients  float64
	Finance  float64
	Admin    float64
}

// ScoreConfig carries every tunable the scoring functions read. The
// zero value is unusable; start from DefaultScoreConfig.
type ScoreConfig struct {
	// StageProbability maps deal stages to close probability in basis
	// points (10000 = certain).
	StageProbability map[core.DealStage]int64
	Weights          HealthWeights
	// PipelineTarget is the weighted-pipeline value considered a full
	// BD score.
	PipelineTarget core.Money
	// DueSoonDays is the compliance alert window.
	DueSoonDays int
}

func DefaultScoreConfig() ScoreConfig {
	return ScoreConfig{
		StageProbability: defaultStageProbability,
		Weights: HealthWeights{
			BD:       0.25,
			Ventures: 0.15,
			Clients:  0.20,
			Finance:  0.30,
			Admin:    0.10,
		},
		PipelineTarget: core.Rands(2_500_000),
		DueSoonDays:    7,
	}
}

// Health is the five domain sub-scores plus the weighted composite,
// all integer percent in [0, 100].
type Health struct {
	BD       int
	Ventures int
	Clients  int
	Finance  int
	Admin    int
	Overall  int
}

// WeightedPipeline sums deal value x stage probability. The per-deal
// products accumulate in cents x basis points, so the only rounding is
// the single half-up division at the end.
func WeightedPipeline(deals []core.Deal, probability map[core.DealStage]int64) core.Money {
	var sum int64
	for _, d := range deals {
		sum += d.Value.Cents * probability[d.Stage]
	}
	return core.Money{Cents: (sum + 5_000) / 10_000}
}

// HealthScores computes the executive health view. Every ratio guards
// its denominator: an empty domain scores 0, never NaN.
func HealthScores(s core.Snapshot, cfg ScoreConfig) Health {
	h := Health{
		BD:       bdScore(s.Deals, cfg),
		Ventures: ventureScore(s.Ventures),
		Clients:  clientScore(s.Clients),
		Finance:  financeScore(s.Finance),
		Admin:    adminScore(s.Compliance),
	}
	w := cfg.Weights
	h.Overall = clampScore(int(math.Round(
		float64(h.BD)*w.BD +
			float64(h.Ventures)*w.Ventures +
			float64(h.Clients)*w.Clients +
			float64(h.Finance)*w.Finance +
			float64(h.Admin)*w.Admin)))
	return h
}

func bdScore(deals []core.Deal, cfg ScoreConfig) int {
	if cfg.PipelineTarget.Cents == 0 {
		return 0
	}
	weighted := WeightedPipeline(deals, cfg.StageProbability)
	pct := int(math.Round(100 * float64(weighted.Cents) / float64(cfg.PipelineTarget.Cents)))
	return clampScore(pct)
}

// ventureScore is a step function of mean days-in-stage. Deliberately
// coarse: under a month of average dwell reads healthy, under two
// passable, beyond that stalled.
func ventureScore(ventures []core.Venture) int {
	if len(ventures) == 0 {
		return 0
	}
	total := 0
	for _, v := range ventures {
		total += v.DaysInStage
	}
	mean := float64(total) / float64(len(ventures))
	switch {
	case mean < 30:
		return 85
	case mean < 60:
		return 65
	default:
		return 45
	}
}

func clientScore(clients []core.Client) int {
	if len(clients) == 0 {
		return 0
	}
	firm := Count(clients, func(c core.Client) bool { return c.Status == core.ClientFirm })
	return clampScore(int(math.Round(100 * float64(firm) / float64(len(clients)))))
}

func financeScore(f core.FinanceSnapshot) int {
	if f.AnnualTarget.Cents == 0 {
		return 0
	}
	monthlyTarget := float64(f.AnnualTarget.Cents) / 12
	return clampScore(int(math.Round(100 * float64(f.YTDRevenue.Cents) / monthlyTarget)))
}

func adminScore(items []core.ComplianceItem) int {
	if len(items) == 0 {
		return 0
	}
	done := Count(items, func(i core.ComplianceItem) bool { return i.Status == core.StatusDone })
	return clampScore(int(math.Round(100 * float64(done) / float64(len(items)))))
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}

// GoalProgress compares actual progress percent against the linear
// expectation for the month (January is month 0). Actual comes from the
// caller's tracking source; nothing is synthesized here.
type GoalProgress struct {
	Actual int
	Target int
	Status core.ProgressStatus
}

// ProgressForMonth classifies actual progress against the expected
// trajectory: at or above 90 percent of expected is on track, above 60
// needs attention, below that at risk.
func ProgressForMonth(actualPct float64, monthIndex int) GoalProgress {
	if monthIndex < 0 {
		monthIndex = 0
	}
	if monthIndex > 11 {
		monthIndex = 11
	}
	expected := float64(monthIndex+1) / 12 * 100

	status := core.ProgressAtRisk
	switch {
	case actualPct >= expected*0.9:
		status = core.ProgressOnTrack
	case actualPct >= expected*0.6:
		status = core.ProgressAttention
	}
	return GoalProgress{
		Actual: int(math.Round(actualPct)),
		Target: int(math.Round(expected)),
		Status: status,
	}
}

// HoursUsage is the studio budget gauge for one project.
type HoursUsage struct {
	Percent    int
	OverBudget bool
}

// ProjectHours computes percent of budget used. A zero budget reads as
// fully over rather than dividing by zero.
func ProjectHours(p core.StudioProject) HoursUsage {
	if p.HoursBudget == 0 {
		return HoursUsage{Percent: 0, OverBudget: p.HoursUsed > 0}
	}
	pct := int(math.Round(100 * float64(p.HoursUsed) / float64(p.HoursBudget)))
	return HoursUsage{Percent: pct, OverBudget: p.HoursUsed > p.HoursBudget}
}

// ComplianceAlerts returns items needing attention: overdue, or not
// done and due within the configured window of now.
func ComplianceAlerts(items []core.ComplianceItem, now time.Time, dueSoonDays int) []core.ComplianceItem {
	return Filter(items, func(i core.ComplianceItem) bool {
		if i.Status == core.StatusDone {
			return false
		}
		if i.Status == core.StatusOverdue {
			return true
		}
		return core.DaysUntil(i.DueDate, now) <= dueSoonDays
	})
}
