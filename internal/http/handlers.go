package http

import (
	"net/http"

	"opsboard/internal/core"
	applog "opsboard/internal/log"
	"opsboard/internal/services"
)

// snapshotOr reads the current dataset, answering 502 and reporting
// false when the backend cannot be reached.
func (s *Server) snapshotOr(w http.ResponseWriter, r *http.Request) (core.Snapshot, bool) {
	snap, err := s.snapshot(r.Context())
	if err != nil {
		s.errlog.LogError(r.Context(), "Snapshot read failed", err, applog.ComponentHTTP, applog.OpRead, applog.NewFields())
		writeError(w, http.StatusBadGateway, "backend unavailable")
		return core.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	health := services.HealthScores(snap, s.cfg)
	weighted := services.WeightedPipeline(snap.Deals, s.cfg.StageProbability)
	alerts := services.ComplianceAlerts(snap.Compliance, s.now(), s.cfg.DueSoonDays)

	writeJSON(w, http.StatusOK, struct {
		Period           string     `json:"period"`
		Health           healthView `json:"health"`
		HealthBadge      badgeView  `json:"healthBadge"`
		WeightedPipeline string     `json:"weightedPipeline"`
		PipelineTarget   string     `json:"pipelineTarget"`
		OpenDeals        int        `json:"openDeals"`
		AlertCount       int        `json:"alertCount"`
	}{
		Period:           snap.Finance.Period,
		Health:           healthViewOf(health),
		HealthBadge:      badge(healthBadge(health.Overall)),
		WeightedPipeline: core.FormatRand(weighted),
		PipelineTarget:   core.FormatRand(s.cfg.PipelineTarget),
		OpenDeals:        services.OpenDealCount(snap.Deals),
		AlertCount:       len(alerts),
	})
}

// healthBadge maps the composite score to the same tiers goal progress
// uses.
func healthBadge(overall int) core.Badge {
	switch {
	case overall >= 70:
		return core.ProgressOnTrack.Badge()
	case overall >= 50:
		return core.ProgressAttention.Badge()
	default:
		return core.ProgressAtRisk.Badge()
	}
}

func (s *Server) handlePipeline(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	board, other := services.DealBoard(snap.Deals)

	type columnView struct {
		Stage string     `json:"stage"`
		Badge badgeView  `json:"badge"`
		Count int        `json:"count"`
		Total string     `json:"total"`
		Deals []dealView `json:"deals"`
	}
	columns := make([]columnView, 0, len(core.DealStages))
	for _, stage := range core.DealStages {
		col := board[stage]
		deals := make([]dealView, 0, len(col.Records))
		for _, d := range col.Records {
			deals = append(deals, dealViewOf(snap, d))
		}
		columns = append(columns, columnView{
			Stage: string(stage),
			Badge: badge(stage.Badge()),
			Count: col.Count,
			Total: core.FormatRand(col.Total),
			Deals: deals,
		})
	}
	otherViews := make([]dealView, 0, len(other))
	for _, d := range other {
		otherViews = append(otherViews, dealViewOf(snap, d))
	}

	writeJSON(w, http.StatusOK, struct {
		Columns   []columnView `json:"columns"`
		Other     []dealView   `json:"other"`
		Weighted  string       `json:"weighted"`
		OpenDeals int          `json:"openDeals"`
	}{
		Columns:   columns,
		Other:     otherViews,
		Weighted:  core.FormatRand(services.WeightedPipeline(snap.Deals, s.cfg.StageProbability)),
		OpenDeals: services.OpenDealCount(snap.Deals),
	})
}

func (s *Server) handleVentures(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	board, other := services.VentureBoard(snap.Ventures)

	type columnView struct {
		Stage    string        `json:"stage"`
		Badge    badgeView     `json:"badge"`
		Count    int           `json:"count"`
		Ventures []ventureView `json:"ventures"`
	}
	columns := make([]columnView, 0, len(core.VentureStages))
	for _, stage := range core.VentureStages {
		group := board[stage]
		views := make([]ventureView, 0, len(group))
		for _, v := range group {
			views = append(views, ventureViewOf(snap, v))
		}
		columns = append(columns, columnView{
			Stage:    string(stage),
			Badge:    badge(stage.Badge()),
			Count:    len(group),
			Ventures: views,
		})
	}
	otherViews := make([]ventureView, 0, len(other))
	for _, v := range other {
		otherViews = append(otherViews, ventureViewOf(snap, v))
	}

	writeJSON(w, http.StatusOK, struct {
		Columns []columnView  `json:"columns"`
		Other   []ventureView `json:"other"`
	}{Columns: columns, Other: otherViews})
}

func (s *Server) handleStudio(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	board, other := services.StudioBoard(snap.Projects)

	type columnView struct {
		Stage    string        `json:"stage"`
		Badge    badgeView     `json:"badge"`
		Count    int           `json:"count"`
		Projects []projectView `json:"projects"`
	}
	columns := make([]columnView, 0, len(core.StudioStages))
	for _, stage := range core.StudioStages {
		group := board[stage]
		views := make([]projectView, 0, len(group))
		for _, p := range group {
			views = append(views, projectViewOf(snap, p))
		}
		columns = append(columns, columnView{
			Stage:    string(stage),
			Badge:    badge(stage.Badge()),
			Count:    len(group),
			Projects: views,
		})
	}
	otherViews := make([]projectView, 0, len(other))
	for _, p := range other {
		otherViews = append(otherViews, projectViewOf(snap, p))
	}

	writeJSON(w, http.StatusOK, struct {
		Columns []columnView  `json:"columns"`
		Other   []projectView `json:"other"`
	}{Columns: columns, Other: otherViews})
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	buckets, other := services.ClientBuckets(snap.Clients)
	now := s.now()

	type bucketView struct {
		Status  string       `json:"status"`
		Badge   badgeView    `json:"badge"`
		Count   int          `json:"count"`
		Clients []clientView `json:"clients"`
	}
	views := make([]bucketView, 0, len(core.ClientStatuses))
	for _, status := range core.ClientStatuses {
		group := buckets[status]
		clients := make([]clientView, 0, len(group))
		for _, c := range group {
			clients = append(clients, clientViewOf(snap, c, now))
		}
		views = append(views, bucketView{
			Status:  string(status),
			Badge:   badge(status.Badge()),
			Count:   len(group),
			Clients: clients,
		})
	}
	otherViews := make([]clientView, 0, len(other))
	for _, c := range other {
		otherViews = append(otherViews, clientViewOf(snap, c, now))
	}

	writeJSON(w, http.StatusOK, struct {
		Buckets []bucketView `json:"buckets"`
		Other   []clientView `json:"other"`
	}{Buckets: views, Other: otherViews})
}

func (s *Server) handleFinance(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	f := snap.Finance
	revenuePct := pctOf(f.YTDRevenue.Cents, f.AnnualTarget.Cents)
	progress := services.ProgressForMonth(float64(revenuePct), periodMonthIndex(f.Period))

	type gaugeView struct {
		Actual  string `json:"actual"`
		Target  string `json:"target"`
		Percent int    `json:"percent"`
	}
	writeJSON(w, http.StatusOK, struct {
		Period   string    `json:"period"`
		Revenue  gaugeView `json:"revenue"`
		Cash     gaugeView `json:"cash"`
		Tax      gaugeView `json:"tax"`
		TaxOwed  string    `json:"taxOutstanding"`
		Progress struct {
			Actual int       `json:"actual"`
			Target int       `json:"target"`
			Badge  badgeView `json:"badge"`
		} `json:"progress"`
	}{
		Period: f.Period,
		Revenue: gaugeView{
			Actual:  core.FormatRand(f.YTDRevenue),
			Target:  core.FormatRand(f.AnnualTarget),
			Percent: revenuePct,
		},
		Cash: gaugeView{
			Actual:  core.FormatRand(f.CashReserves),
			Target:  core.FormatRand(f.CashTarget),
			Percent: pctOf(f.CashReserves.Cents, f.CashTarget.Cents),
		},
		Tax: gaugeView{
			Actual:  core.FormatRand(f.TaxMonthlyPaid),
			Target:  core.FormatRand(f.TaxMonthlyTarget),
			Percent: pctOf(f.TaxMonthlyPaid.Cents, f.TaxMonthlyTarget.Cents),
		},
		TaxOwed: core.FormatRand(f.TaxOutstanding),
		Progress: struct {
			Actual int       `json:"actual"`
			Target int       `json:"target"`
			Badge  badgeView `json:"badge"`
		}{
			Actual: progress.Actual,
			Target: progress.Target,
			Badge:  badge(progress.Status.Badge()),
		},
	})
}

func (s *Server) handleCompliance(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	groups, other := services.ComplianceByCategory(snap.Compliance)
	alerts := services.ComplianceAlerts(snap.Compliance, s.now(), s.cfg.DueSoonDays)

	type categoryView struct {
		Category string           `json:"category"`
		Count    int              `json:"count"`
		Items    []complianceView `json:"items"`
	}
	categories := make([]categoryView, 0, len(core.ComplianceCategories))
	for _, cat := range core.ComplianceCategories {
		group := groups[cat]
		items := make([]complianceView, 0, len(group))
		for _, i := range group {
			items = append(items, complianceViewOf(snap, i))
		}
		categories = append(categories, categoryView{
			Category: string(cat),
			Count:    len(group),
			Items:    items,
		})
	}
	otherViews := make([]complianceView, 0, len(other))
	for _, i := range other {
		otherViews = append(otherViews, complianceViewOf(snap, i))
	}
	alertViews := make([]complianceView, 0, len(alerts))
	for _, i := range alerts {
		alertViews = append(alertViews, complianceViewOf(snap, i))
	}

	writeJSON(w, http.StatusOK, struct {
		Categories []categoryView   `json:"categories"`
		Other      []complianceView `json:"other"`
		Alerts     []complianceView `json:"alerts"`
	}{Categories: categories, Other: otherViews, Alerts: alertViews})
}

func (s *Server) handleWeekly(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}

	groups, other := services.ActivitiesByArea(snap.Activities)

	type areaView struct {
		Area       string         `json:"area"`
		Label      string         `json:"label"`
		Count      int            `json:"count"`
		Activities []activityView `json:"activities"`
	}
	areas := make([]areaView, 0, len(core.FocusAreas))
	for _, area := range core.FocusAreas {
		group := groups[area]
		activities := make([]activityView, 0, len(group))
		for _, a := range group {
			activities = append(activities, activityViewOf(snap, a))
		}
		areas = append(areas, areaView{
			Area:       string(area),
			Label:      area.Label(),
			Count:      len(group),
			Activities: activities,
		})
	}
	otherViews := make([]activityView, 0, len(other))
	for _, a := range other {
		otherViews = append(otherViews, activityViewOf(snap, a))
	}

	writeJSON(w, http.StatusOK, struct {
		Areas []areaView     `json:"areas"`
		Other []activityView `json:"other"`
	}{Areas: areas, Other: otherViews})
}

// handleProgress classifies an annual-goal progress figure against the
// linear trajectory for a month. The month defaults to the current one.
func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	actual, err := queryFloat(r, "actual")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	month, err := queryInt(r, "month", int(s.now().Month())-1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	progress := services.ProgressForMonth(actual, month)
	writeJSON(w, http.StatusOK, struct {
		Actual int       `json:"actual"`
		Target int       `json:"target"`
		Status string    `json:"status"`
		Badge  badgeView `json:"badge"`
	}{
		Actual: progress.Actual,
		Target: progress.Target,
		Status: string(progress.Status),
		Badge:  badge(progress.Status.Badge()),
	})
}

// handleFarmstead serves the team page: moods, top of mind, rally
// goals, and the wins feed.
func (s *Server) handleFarmstead(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.snapshotOr(w, r)
	if !ok {
		return
	}
	now := s.now()

	type memberView struct {
		ID        int64  `json:"id"`
		Name      string `json:"name"`
		Role      string `json:"role"`
		Initials  string `json:"initials"`
		Color     string `json:"color"`
		Mood      string `json:"mood,omitempty"`
		MoodText  string `json:"moodText,omitempty"`
		TopOfMind string `json:"topOfMind,omitempty"`
		Updated   string `json:"updated,omitempty"`
	}
	topOfMind := make(map[int64]core.TopOfMind, len(snap.TopOfMind))
	for _, t := range snap.TopOfMind {
		topOfMind[t.MemberID] = t
	}
	members := make([]memberView, 0, len(snap.Team))
	for _, m := range snap.Team {
		mv := memberView{
			ID:       m.ID,
			Name:     m.Name,
			Role:     m.Role,
			Initials: m.Initials,
			Color:    m.Color,
			Mood:     m.Mood,
			MoodText: m.MoodText,
		}
		if t, ok := topOfMind[m.ID]; ok {
			mv.TopOfMind = t.Content
			if !t.LastUpdated.IsEmpty() {
				mv.Updated = core.RelativeLabel(t.LastUpdated, now)
			}
		}
		members = append(members, mv)
	}

	type conquerView struct {
		ID         int64       `json:"id"`
		Title      string      `json:"title"`
		LinkedGoal string      `json:"linkedGoal,omitempty"`
		Rallied    []ownerView `json:"rallied"`
	}
	conquer := make([]conquerView, 0, len(snap.MustConquer))
	for _, mc := range snap.MustConquer {
		cv := conquerView{ID: mc.ID, Title: mc.Title}
		if g, ok := snap.Goal(mc.LinkedGoalID); ok {
			cv.LinkedGoal = g.Title
		}
		cv.Rallied = make([]ownerView, 0, len(mc.RalliedIDs))
		for _, id := range mc.RalliedIDs {
			cv.Rallied = append(cv.Rallied, ownerOf(snap, id))
		}
		conquer = append(conquer, cv)
	}

	type winView struct {
		ID      int64     `json:"id"`
		Author  ownerView `json:"author"`
		Content string    `json:"content"`
		Posted  string    `json:"posted"`
		Claps   int       `json:"claps"`
	}
	wins := make([]winView, 0, len(snap.Wins))
	for _, win := range snap.Wins {
		wins = append(wins, winView{
			ID:      win.ID,
			Author:  ownerOf(snap, win.AuthorID),
			Content: win.Content,
			Posted:  core.RelativeLabel(win.CreatedAt, now),
			Claps:   services.Claps(win),
		})
	}

	writeJSON(w, http.StatusOK, struct {
		Team        []memberView  `json:"team"`
		MustConquer []conquerView `json:"mustConquer"`
		Wins        []winView     `json:"wins"`
	}{Team: members, MustConquer: conquer, Wins: wins})
}
