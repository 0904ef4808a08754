package http

import (
	"time"

	"opsboard/internal/core"
	"opsboard/internal/services"
)

// View models for the JSON API. Every money field is pre-formatted with
// the board's abbreviation rule so clients never re-implement it.

type badgeView struct {
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

func badge(b core.Badge) badgeView {
	return badgeView{Label: b.Label, Tone: string(b.Tone)}
}

type ownerView struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Color    string `json:"color"`
}

// ownerOf resolves a member id to its display card. Dangling owner ids
// render a placeholder instead of failing the whole view.
func ownerOf(snap core.Snapshot, id int64) ownerView {
	if m, ok := snap.Member(id); ok {
		return ownerView{Name: m.Name, Initials: m.Initials, Color: m.Color}
	}
	return ownerView{Name: "Unassigned", Initials: "?", Color: "#9ca3af"}
}

func dateLabel(d core.Date) string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format("2006-01-02")
}

type healthView struct {
	BD       int `json:"bd"`
	Ventures int `json:"ventures"`
	Clients  int `json:"clients"`
	Finance  int `json:"finance"`
	Admin    int `json:"admin"`
	Overall  int `json:"overall"`
}

func healthViewOf(h services.Health) healthView {
	return healthView{
		BD:       h.BD,
		Ventures: h.Ventures,
		Clients:  h.Clients,
		Finance:  h.Finance,
		Admin:    h.Admin,
		Overall:  h.Overall,
	}
}

type dealView struct {
	ID            int64     `json:"id"`
	Client        string    `json:"client"`
	Opportunity   string    `json:"opportunity"`
	Value         string    `json:"value"`
	ExpectedClose string    `json:"expectedClose,omitempty"`
	Owner         ownerView `json:"owner"`
	Notes         string    `json:"notes,omitempty"`
}

func dealViewOf(snap core.Snapshot, d core.Deal) dealView {
	return dealView{
		ID:            d.ID,
		Client:        d.Client,
		Opportunity:   d.Opportunity,
		Value:         core.FormatRand(d.Value),
		ExpectedClose: dateLabel(d.ExpectedClose),
		Owner:         ownerOf(snap, d.OwnerID),
		Notes:         d.Notes,
	}
}

type ventureView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	DaysInStage   int       `json:"daysInStage"`
	TargetDate    string    `json:"targetDate,omitempty"`
	NextMilestone string    `json:"nextMilestone,omitempty"`
	Owner         ownerView `json:"owner"`
}

func ventureViewOf(snap core.Snapshot, v core.Venture) ventureView {
	return ventureView{
		ID:            v.ID,
		Name:          v.Name,
		Description:   v.Description,
		DaysInStage:   v.DaysInStage,
		TargetDate:    dateLabel(v.TargetDate),
		NextMilestone: v.NextMilestone,
		Owner:         ownerOf(snap, v.OwnerID),
	}
}

type projectView struct {
	ID          int64     `json:"id"`
	Project     string    `json:"project"`
	Client      string    `json:"client"`
	HoursUsed   int64     `json:"hoursUsed"`
	HoursBudget int64     `json:"hoursBudget"`
	HoursPct    int       `json:"hoursPct"`
	OverBudget  bool      `json:"overBudget"`
	Rate        string    `json:"rate"`
	DueDate     string    `json:"dueDate,omitempty"`
	Owner       ownerView `json:"owner"`
}

func projectViewOf(snap core.Snapshot, p core.StudioProject) projectView {
	usage := services.ProjectHours(p)
	return projectView{
		ID:          p.ID,
		Project:     p.Project,
		Client:      p.Client,
		HoursUsed:   p.HoursUsed,
		HoursBudget: p.HoursBudget,
		HoursPct:    usage.Percent,
		OverBudget:  usage.OverBudget,
		Rate:        core.FormatRand(p.Rate),
		DueDate:     dateLabel(p.DueDate),
		Owner:       ownerOf(snap, p.OwnerID),
	}
}

type clientView struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Contact        string    `json:"contact,omitempty"`
	ActiveProjects int       `json:"activeProjects"`
	YTDRevenue     string    `json:"ytdRevenue"`
	LastContact    string    `json:"lastContact"`
	Owner          ownerView `json:"owner"`
}

func clientViewOf(snap core.Snapshot, c core.Client, now time.Time) clientView {
	last := ""
	if !c.LastContact.IsEmpty() {
		last = core.RelativeLabel(c.LastContact, now)
	}
	return clientView{
		ID:             c.ID,
		Name:           c.Name,
		Contact:        c.Contact,
		ActiveProjects: c.ActiveProjects,
		YTDRevenue:     core.FormatRand(c.YTDRevenue),
		LastContact:    last,
		Owner:          ownerOf(snap, c.OwnerID),
	}
}

type complianceView struct {
	ID        int64     `json:"id"`
	Item      string    `json:"item"`
	Frequency string    `json:"frequency,omitempty"`
	DueDate   string    `json:"dueDate,omitempty"`
	Status    badgeView `json:"status"`
	Owner     ownerView `json:"owner"`
}

func complianceViewOf(snap core.Snapshot, i core.ComplianceItem) complianceView {
	return complianceView{
		ID:        i.ID,
		Item:      i.Item,
		Frequency: i.Frequency,
		DueDate:   dateLabel(i.DueDate),
		Status:    badge(i.Status.Badge()),
		Owner:     ownerOf(snap, i.OwnerID),
	}
}

type activityView struct {
	ID           int64     `json:"id"`
	Description  string    `json:"description"`
	DueDay       string    `json:"dueDay,omitempty"`
	Status       badgeView `json:"status"`
	Owner        ownerView `json:"owner"`
	Dependencies []int64   `json:"dependencies,omitempty"`
	OutcomeNotes string    `json:"outcomeNotes,omitempty"`
}

func activityViewOf(snap core.Snapshot, a core.WeeklyActivity) activityView {
	return activityView{
		ID:           a.ID,
		Description:  a.Description,
		DueDay:       string(a.DueDay),
		Status:       badge(a.Status.Badge()),
		Owner:        ownerOf(snap, a.OwnerID),
		Dependencies: a.Dependencies,
		OutcomeNotes: a.OutcomeNotes,
	}
}

// periodMonthIndex extracts the zero-based month from a "YYYY-MM"
// finance period. Unparseable periods fall back to January.
func periodMonthIndex(period string) int {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return 0
	}
	return int(t.Month()) - 1
}

// pctOf returns 100*num/den rounded half up, 0 when den is 0.
func pctOf(num, den int64) int {
	if den == 0 {
		return 0
	}
	return int((num*200 + den) / (den * 2))
}
