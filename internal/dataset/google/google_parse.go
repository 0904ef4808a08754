package google

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"opsboard/internal/core"
)

// Row layouts. Columns hold, in order, the fields listed next to each
// parser. Amounts are rand values with an optional decimal part; dates
// are ISO (2006-01-02) and may be blank where the field is optional.

// id, name, role, initials, color, mood, moodText
func parseTeamMember(cols []string) (core.TeamMember, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.TeamMember{}, err
	}
	return core.TeamMember{
		ID:       id,
		Name:     safeGet(cols, 1),
		Role:     safeGet(cols, 2),
		Initials: safeGet(cols, 3),
		Color:    safeGet(cols, 4),
		Mood:     safeGet(cols, 5),
		MoodText: safeGet(cols, 6),
	}, nil
}

// id, title, metric, area, ownerID
func parseGoal(cols []string) (core.AnnualGoal, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.AnnualGoal{}, err
	}
	owner, err := parseID(safeGet(cols, 4))
	if err != nil {
		return core.AnnualGoal{}, err
	}
	return core.AnnualGoal{
		ID:      id,
		Title:   safeGet(cols, 1),
		Metric:  safeGet(cols, 2),
		Area:    core.FocusArea(safeGet(cols, 3)),
		OwnerID: owner,
	}, nil
}

// id, client, opportunity, value, stage, expectedClose, ownerID, notes
func parseDeal(cols []string) (core.Deal, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.Deal{}, err
	}
	value, err := parseRands(safeGet(cols, 3))
	if err != nil {
		return core.Deal{}, fmt.Errorf("value: %w", err)
	}
	closeDate, err := parseDate(safeGet(cols, 5))
	if err != nil {
		return core.Deal{}, fmt.Errorf("expected close: %w", err)
	}
	owner, err := parseID(safeGet(cols, 6))
	if err != nil {
		return core.Deal{}, err
	}
	return core.Deal{
		ID:            id,
		Client:        safeGet(cols, 1),
		Opportunity:   safeGet(cols, 2),
		Value:         value,
		Stage:         core.DealStage(safeGet(cols, 4)),
		ExpectedClose: closeDate,
		OwnerID:       owner,
		Notes:         safeGet(cols, 7),
	}, nil
}

// id, name, description, stage, daysInStage, targetDate, nextMilestone, ownerID
func parseVenture(cols []string) (core.Venture, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.Venture{}, err
	}
	days, err := parseInt(safeGet(cols, 4))
	if err != nil {
		return core.Venture{}, fmt.Errorf("days in stage: %w", err)
	}
	target, err := parseDate(safeGet(cols, 5))
	if err != nil {
		return core.Venture{}, fmt.Errorf("target date: %w", err)
	}
	owner, err := parseID(safeGet(cols, 7))
	if err != nil {
		return core.Venture{}, err
	}
	return core.Venture{
		ID:            id,
		Name:          safeGet(cols, 1),
		Description:   safeGet(cols, 2),
		Stage:         core.VentureStage(safeGet(cols, 3)),
		DaysInStage:   days,
		TargetDate:    target,
		NextMilestone: safeGet(cols, 6),
		OwnerID:       owner,
	}, nil
}

// id, project, client, hoursBudget, hoursUsed, rate, stage, dueDate, ownerID
func parseProject(cols []string) (core.StudioProject, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.StudioProject{}, err
	}
	budget, err := parseID(safeGet(cols, 3))
	if err != nil {
		return core.StudioProject{}, fmt.Errorf("hours budget: %w", err)
	}
	used, err := parseID(safeGet(cols, 4))
	if err != nil {
		return core.StudioProject{}, fmt.Errorf("hours used: %w", err)
	}
	rate, err := parseRands(safeGet(cols, 5))
	if err != nil {
		return core.StudioProject{}, fmt.Errorf("rate: %w", err)
	}
	due, err := parseDate(safeGet(cols, 7))
	if err != nil {
		return core.StudioProject{}, fmt.Errorf("due date: %w", err)
	}
	owner, err := parseID(safeGet(cols, 8))
	if err != nil {
		return core.StudioProject{}, err
	}
	return core.StudioProject{
		ID:          id,
		Project:     safeGet(cols, 1),
		Client:      safeGet(cols, 2),
		HoursBudget: budget,
		HoursUsed:   used,
		Rate:        rate,
		Stage:       core.StudioStage(safeGet(cols, 6)),
		DueDate:     due,
		OwnerID:     owner,
	}, nil
}

// id, name, contact, status, activeProjects, ytdRevenue, lastContact, ownerID
func parseClient(cols []string) (core.Client, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.Client{}, err
	}
	active, err := parseInt(safeGet(cols, 4))
	if err != nil {
		return core.Client{}, fmt.Errorf("active projects: %w", err)
	}
	ytd, err := parseRands(safeGet(cols, 5))
	if err != nil {
		return core.Client{}, fmt.Errorf("ytd revenue: %w", err)
	}
	last, err := parseDate(safeGet(cols, 6))
	if err != nil {
		return core.Client{}, fmt.Errorf("last contact: %w", err)
	}
	owner, err := parseID(safeGet(cols, 7))
	if err != nil {
		return core.Client{}, err
	}
	return core.Client{
		ID:             id,
		Name:           safeGet(cols, 1),
		Contact:        safeGet(cols, 2),
		Status:         core.ClientStatus(safeGet(cols, 3)),
		ActiveProjects: active,
		YTDRevenue:     ytd,
		LastContact:    last,
		OwnerID:        owner,
	}, nil
}

// period, ytdRevenue, annualTarget, cashReserves, cashTarget,
// taxOutstanding, taxMonthlyPaid, taxMonthlyTarget
func parseFinance(row []any) (core.FinanceSnapshot, error) {
	cols := toStrings(row)
	amounts := make([]core.Money, 7)
	for i := range amounts {
		m, err := parseRands(safeGet(cols, i+1))
		if err != nil {
			return core.FinanceSnapshot{}, fmt.Errorf("column %d: %w", i+2, err)
		}
		amounts[i] = m
	}
	return core.FinanceSnapshot{
		Period:           safeGet(cols, 0),
		YTDRevenue:       amounts[0],
		AnnualTarget:     amounts[1],
		CashReserves:     amounts[2],
		CashTarget:       amounts[3],
		TaxOutstanding:   amounts[4],
		TaxMonthlyPaid:   amounts[5],
		TaxMonthlyTarget: amounts[6],
	}, nil
}

// id, item, category, frequency, dueDate, status, ownerID
func parseComplianceItem(cols []string) (core.ComplianceItem, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.ComplianceItem{}, err
	}
	due, err := parseDate(safeGet(cols, 4))
	if err != nil {
		return core.ComplianceItem{}, fmt.Errorf("due date: %w", err)
	}
	owner, err := parseID(safeGet(cols, 6))
	if err != nil {
		return core.ComplianceItem{}, err
	}
	return core.ComplianceItem{
		ID:        id,
		Item:      safeGet(cols, 1),
		Category:  core.ComplianceCategory(safeGet(cols, 2)),
		Frequency: safeGet(cols, 3),
		DueDate:   due,
		Status:    core.ComplianceStatus(safeGet(cols, 5)),
		OwnerID:   owner,
	}, nil
}

// id, description, focusArea, dueDay, status, ownerID, dependencies, outcomeNotes
func parseActivity(cols []string) (core.WeeklyActivity, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.WeeklyActivity{}, err
	}
	owner, err := parseID(safeGet(cols, 5))
	if err != nil {
		return core.WeeklyActivity{}, err
	}
	deps, err := parseIDList(safeGet(cols, 6))
	if err != nil {
		return core.WeeklyActivity{}, fmt.Errorf("dependencies: %w", err)
	}
	return core.WeeklyActivity{
		ID:           id,
		Description:  safeGet(cols, 1),
		FocusArea:    core.FocusArea(safeGet(cols, 2)),
		DueDay:       core.Weekday(safeGet(cols, 3)),
		Status:       core.ActivityStatus(safeGet(cols, 4)),
		OwnerID:      owner,
		Dependencies: deps,
		OutcomeNotes: safeGet(cols, 7),
	}, nil
}

// id, title, linkedGoalID, ralliedIDs
func parseMustConquer(cols []string) (core.MustConquer, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.MustConquer{}, err
	}
	var linked int64
	if s := safeGet(cols, 2); s != "" {
		if linked, err = parseID(s); err != nil {
			return core.MustConquer{}, fmt.Errorf("linked goal: %w", err)
		}
	}
	rallied, err := parseIDList(safeGet(cols, 3))
	if err != nil {
		return core.MustConquer{}, fmt.Errorf("rallied: %w", err)
	}
	return core.MustConquer{ID: id, Title: safeGet(cols, 1), LinkedGoalID: linked, RalliedIDs: rallied}, nil
}

// id, authorID, content, createdAt, clapperIDs
func parseWin(cols []string) (core.Win, error) {
	id, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.Win{}, err
	}
	author, err := parseID(safeGet(cols, 1))
	if err != nil {
		return core.Win{}, fmt.Errorf("author: %w", err)
	}
	created, err := parseDate(safeGet(cols, 3))
	if err != nil {
		return core.Win{}, fmt.Errorf("created: %w", err)
	}
	clappers, err := parseIDList(safeGet(cols, 4))
	if err != nil {
		return core.Win{}, fmt.Errorf("clappers: %w", err)
	}
	return core.Win{ID: id, AuthorID: author, Content: safeGet(cols, 2), CreatedAt: created, ClapperIDs: clappers}, nil
}

// memberID, content, lastUpdated
func parseTopOfMind(cols []string) (core.TopOfMind, error) {
	member, err := parseID(safeGet(cols, 0))
	if err != nil {
		return core.TopOfMind{}, err
	}
	updated, err := parseDate(safeGet(cols, 2))
	if err != nil {
		return core.TopOfMind{}, fmt.Errorf("last updated: %w", err)
	}
	return core.TopOfMind{MemberID: member, Content: safeGet(cols, 1), LastUpdated: updated}, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func safeGet(arr []string, idx int) string {
	if idx < 0 || idx >= len(arr) {
		return ""
	}
	return arr[idx]
}

func allBlank(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}

func parseID(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad id %q", s)
	}
	return n, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("bad number %q", s)
	}
	return n, nil
}

// parseRands converts a rand amount, with an optional decimal comma or
// point, to exact cents.
func parseRands(s string) (core.Money, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "R")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return core.Money{}, fmt.Errorf("empty amount")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return core.Money{}, fmt.Errorf("bad amount %q", s)
	}
	if f < 0 {
		return core.Money{Cents: int64((f * 100.0) - 0.5)}, nil
	}
	return core.Money{Cents: int64((f * 100.0) + 0.5)}, nil
}

func parseDate(s string) (core.Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Date{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("bad date %q", s)
	}
	return core.Date{Time: t}, nil
}

// parseIDList splits a comma-separated id list; blank means none.
func parseIDList(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := parseID(p)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}
