package services

import (
	"testing"
	"time"

	"opsboard/internal/core"
)

func TestWeightedPipeline(t *testing.T) {
	probs := DefaultScoreConfig().StageProbability

	tests := []struct {
		name  string
		deals []core.Deal
		want  int64 // rand
	}{
		{
			name:  "single proposal deal",
			deals: []core.Deal{{Value: core.Rands(1_000_000), Stage: core.StageProposal}},
			want:  600_000,
		},
		{
			name: "lost contributes nothing",
			deals: []core.Deal{
				{Value: core.Rands(500_000), Stage: core.StageLost},
				{Value: core.Rands(100_000), Stage: core.StageWon},
			},
			want: 100_000,
		},
		{
			name: "sums across stages",
			deals: []core.Deal{
				{Value: core.Rands(320_000), Stage: core.StageLead},        // 32 000
				{Value: core.Rands(400_000), Stage: core.StageNegotiation}, // 320 000
			},
			want: 352_000,
		},
		{name: "no deals", deals: nil, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WeightedPipeline(tt.deals, probs)
			if got != core.Rands(tt.want) {
				t.Errorf("WeightedPipeline = %d cents, want %d", got.Cents, core.Rands(tt.want).Cents)
			}
		})
	}
}

func TestWeightedPipelineIsLinearPerDeal(t *testing.T) {
	probs := DefaultScoreConfig().StageProbability
	base := []core.Deal{
		{Value: core.Rands(200_000), Stage: core.StageDiscovery},
		{Value: core.Rands(100_000), Stage: core.StageProposal},
	}
	scaled := []core.Deal{
		{Value: core.Rands(600_000), Stage: core.StageDiscovery}, // x3
		{Value: core.Rands(100_000), Stage: core.StageProposal},
	}

	baseW := WeightedPipeline(base, probs)
	scaledW := WeightedPipeline(scaled, probs)

	// Tripling one deal adds exactly 2x its own contribution.
	contribution := WeightedPipeline(base[:1], probs)
	if want := baseW.Cents + 2*contribution.Cents; scaledW.Cents != want {
		t.Errorf("scaled = %d cents, want %d", scaledW.Cents, want)
	}
}

func TestClientScore(t *testing.T) {
	clients := []core.Client{
		{Status: core.ClientFirm},
		{Status: core.ClientAttention},
		{Status: core.ClientAtRisk},
		{Status: core.ClientDormant},
	}
	if got := clientScore(clients); got != 25 {
		t.Errorf("clientScore = %d, want 25", got)
	}
	if got := clientScore(nil); got != 0 {
		t.Errorf("clientScore(empty) = %d, want 0", got)
	}
}

func TestAdminScoreZeroGuard(t *testing.T) {
	if got := adminScore(nil); got != 0 {
		t.Errorf("adminScore(empty) = %d, want 0 not NaN", got)
	}
	items := []core.ComplianceItem{
		{Status: core.StatusDone},
		{Status: core.StatusDone},
		{Status: core.StatusPending},
		{Status: core.StatusOverdue},
	}
	if got := adminScore(items); got != 50 {
		t.Errorf("adminScore = %d, want 50", got)
	}
}

func TestVentureScoreSteps(t *testing.T) {
	tests := []struct {
		name string
		days []int
		want int
	}{
		{"fresh", []int{10, 20}, 85},      // mean 15
		{"drifting", []int{23, 45}, 65},   // mean 34
		{"stalled", []int{90, 120}, 45},   // mean 105
		{"boundary thirty", []int{30}, 65},
		{"no ventures", nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vs []core.Venture
			for _, d := range tt.days {
				vs = append(vs, core.Venture{DaysInStage: d})
			}
			if got := ventureScore(vs); got != tt.want {
				t.Errorf("ventureScore(%v) = %d, want %d", tt.days, got, tt.want)
			}
		})
	}
}

func TestFinanceScoreCapped(t *testing.T) {
	f := core.FinanceSnapshot{
		YTDRevenue:   core.Rands(1_800_000),
		AnnualTarget: core.Rands(10_000_000),
	}
	// 1.8M against a ~833K monthly target saturates at 100.
	if got := financeScore(f); got != 100 {
		t.Errorf("financeScore = %d, want 100", got)
	}
	if got := financeScore(core.FinanceSnapshot{}); got != 0 {
		t.Errorf("financeScore(zero target) = %d, want 0", got)
	}
}

func TestHealthScoresComposite(t *testing.T) {
	snap := core.Snapshot{
		Deals:    []core.Deal{{Value: core.Rands(1_000_000), Stage: core.StageProposal}},
		Ventures: []core.Venture{{DaysInStage: 23, Stage: core.VentureMVPBuild, Name: "x"}},
		Clients: []core.Client{
			{Status: core.ClientFirm}, {Status: core.ClientFirm},
			{Status: core.ClientAttention}, {Status: core.ClientAtRisk},
		},
		Finance: core.FinanceSnapshot{
			YTDRevenue:   core.Rands(600_000),
			AnnualTarget: core.Rands(10_000_000),
		},
		Compliance: []core.ComplianceItem{
			{Status: core.StatusDone}, {Status: core.StatusPending},
		},
	}
	cfg := DefaultScoreConfig()
	h := HealthScores(snap, cfg)

	// BD: 600K weighted of a 2.5M target -> 24.
	if h.BD != 24 {
		t.Errorf("BD = %d, want 24", h.BD)
	}
	if h.Ventures != 85 {
		t.Errorf("Ventures = %d, want 85", h.Ventures)
	}
	if h.Clients != 50 {
		t.Errorf("Clients = %d, want 50", h.Clients)
	}
	if h.Finance != 72 {
		t.Errorf("Finance = %d, want 72", h.Finance)
	}
	if h.Admin != 50 {
		t.Errorf("Admin = %d, want 50", h.Admin)
	}
	// 24*.25 + 85*.15 + 50*.20 + 72*.30 + 50*.10 = 55.35 -> 55
	if h.Overall != 55 {
		t.Errorf("Overall = %d, want 55", h.Overall)
	}
	if h.Overall < 0 || h.Overall > 100 {
		t.Errorf("Overall = %d, out of [0,100]", h.Overall)
	}
}

func TestHealthScoresEmptySnapshot(t *testing.T) {
	h := HealthScores(core.Snapshot{}, DefaultScoreConfig())
	if h.Overall != 0 {
		t.Errorf("Overall = %d, want 0 for an empty snapshot", h.Overall)
	}
}

func TestProgressForMonth(t *testing.T) {
	tests := []struct {
		name   string
		actual float64
		month  int
		target int
		status core.ProgressStatus
	}{
		{"on track january", 8, 0, 8, core.ProgressOnTrack},       // expected 8.33
		{"attention june", 35, 5, 50, core.ProgressAttention},     // expected 50, 70% of it
		{"at risk december", 40, 11, 100, core.ProgressAtRisk},
		{"exactly ninety percent", 45, 5, 50, core.ProgressOnTrack},
		{"month clamped high", 95, 20, 100, core.ProgressOnTrack},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressForMonth(tt.actual, tt.month)
			if got.Target != tt.target {
				t.Errorf("Target = %d, want %d", got.Target, tt.target)
			}
			if got.Status != tt.status {
				t.Errorf("Status = %s, want %s", got.Status, tt.status)
			}
		})
	}
}

func TestProjectHours(t *testing.T) {
	over := ProjectHours(core.StudioProject{HoursBudget: 40, HoursUsed: 52})
	if over.Percent != 130 || !over.OverBudget {
		t.Errorf("over-budget project = %+v, want 130%% flagged", over)
	}
	under := ProjectHours(core.StudioProject{HoursBudget: 160, HoursUsed: 142})
	if under.Percent != 89 || under.OverBudget {
		t.Errorf("under-budget project = %+v, want 89%% unflagged", under)
	}
	zero := ProjectHours(core.StudioProject{HoursBudget: 0, HoursUsed: 3})
	if zero.Percent != 0 || !zero.OverBudget {
		t.Errorf("zero-budget project = %+v, want 0%% flagged", zero)
	}
}

func TestComplianceAlerts(t *testing.T) {
	now := time.Date(2026, 1, 20, 9, 0, 0, 0, time.UTC)
	items := []core.ComplianceItem{
		{ID: 1, Status: core.StatusOverdue, DueDate: core.NewDate(2026, 1, 15)},
		{ID: 2, Status: core.StatusPending, DueDate: core.NewDate(2026, 1, 25)}, // 5 days out
		{ID: 3, Status: core.StatusPending, DueDate: core.NewDate(2026, 3, 1)},  // far out
		{ID: 4, Status: core.StatusDone, DueDate: core.NewDate(2026, 1, 21)},
	}
	alerts := ComplianceAlerts(items, now, 7)

	if len(alerts) != 2 {
		t.Fatalf("alerts = %d items, want 2", len(alerts))
	}
	if alerts[0].ID != 1 || alerts[1].ID != 2 {
		t.Errorf("alert ids = %d,%d want 1,2", alerts[0].ID, alerts[1].ID)
	}
}
