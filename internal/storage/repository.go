// Package storage keeps the operations dataset in SQLite for
// deployments that want local persistence instead of a spreadsheet.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"opsboard/internal/core"
	"opsboard/internal/dataset"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

var _ dataset.SnapshotReader = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Seed replaces the stored dataset with the given snapshot in one
// transaction.
func (r *SQLiteRepository) Seed(ctx context.Context, snap core.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"team_members", "annual_goals", "deals", "ventures", "studio_projects",
		"clients", "finance_snapshots", "compliance_items", "weekly_activities",
		"must_conquer", "wins", "top_of_mind",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, m := range snap.Team {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO team_members (id, name, role, initials, color, mood, mood_text) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.Name, m.Role, m.Initials, m.Color, m.Mood, m.MoodText); err != nil {
			return fmt.Errorf("insert team member %d: %w", m.ID, err)
		}
	}
	for _, g := range snap.Goals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO annual_goals (id, title, metric, area, owner_id) VALUES (?, ?, ?, ?, ?)`,
			g.ID, g.Title, g.Metric, string(g.Area), g.OwnerID); err != nil {
			return fmt.Errorf("insert goal %d: %w", g.ID, err)
		}
	}
	for _, d := range snap.Deals {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO deals (id, client, opportunity, value_cents, stage, expected_close, owner_id, notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			d.ID, d.Client, d.Opportunity, d.Value.Cents, string(d.Stage),
			dateText(d.ExpectedClose), d.OwnerID, d.Notes); err != nil {
			return fmt.Errorf("insert deal %d: %w", d.ID, err)
		}
	}
	for _, v := range snap.Ventures {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO ventures (id, name, description, stage, days_in_stage, target_date, next_milestone, owner_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, v.Name, v.Description, string(v.Stage), v.DaysInStage,
			dateText(v.TargetDate), v.NextMilestone, v.OwnerID); err != nil {
			return fmt.Errorf("insert venture %d: %w", v.ID, err)
		}
	}
	for _, p := range snap.Projects {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO studio_projects (id, project, client, hours_budget, hours_used, rate_cents, stage, due_date, owner_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.Project, p.Client, p.HoursBudget, p.HoursUsed, p.Rate.Cents,
			string(p.Stage), dateText(p.DueDate), p.OwnerID); err != nil {
			return fmt.Errorf("insert project %d: %w", p.ID, err)
		}
	}
	for _, c := range snap.Clients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO clients (id, name, contact, status, active_projects, ytd_revenue_cents, last_contact, owner_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.Name, c.Contact, string(c.Status), c.ActiveProjects,
			c.YTDRevenue.Cents, dateText(c.LastContact), c.OwnerID); err != nil {
			return fmt.Errorf("insert client %d: %w", c.ID, err)
		}
	}
	f := snap.Finance
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO finance_snapshots (period, ytd_revenue_cents, annual_target_cents, cash_reserves_cents,
		 cash_target_cents, tax_outstanding_cents, tax_monthly_paid_cents, tax_monthly_target_cents)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		f.Period, f.YTDRevenue.Cents, f.AnnualTarget.Cents, f.CashReserves.Cents,
		f.CashTarget.Cents, f.TaxOutstanding.Cents, f.TaxMonthlyPaid.Cents, f.TaxMonthlyTarget.Cents); err != nil {
		return fmt.Errorf("insert finance snapshot: %w", err)
	}
	for _, i := range snap.Compliance {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO compliance_items (id, item, category, frequency, due_date, status, owner_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			i.ID, i.Item, string(i.Category), i.Frequency, dateText(i.DueDate),
			string(i.Status), i.OwnerID); err != nil {
			return fmt.Errorf("insert compliance item %d: %w", i.ID, err)
		}
	}
	for _, a := range snap.Activities {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO weekly_activities (id, description, focus_area, due_day, status, owner_id, dependencies, outcome_notes)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.Description, string(a.FocusArea), string(a.DueDay),
			string(a.Status), a.OwnerID, joinIDs(a.Dependencies), a.OutcomeNotes); err != nil {
			return fmt.Errorf("insert activity %d: %w", a.ID, err)
		}
	}
	for _, mc := range snap.MustConquer {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO must_conquer (id, title, linked_goal_id, rallied_ids) VALUES (?, ?, ?, ?)`,
			mc.ID, mc.Title, mc.LinkedGoalID, joinIDs(mc.RalliedIDs)); err != nil {
			return fmt.Errorf("insert must-conquer %d: %w", mc.ID, err)
		}
	}
	for _, w := range snap.Wins {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO wins (id, author_id, content, created_at, clapper_ids) VALUES (?, ?, ?, ?, ?)`,
			w.ID, w.AuthorID, w.Content, dateText(w.CreatedAt), joinIDs(w.ClapperIDs)); err != nil {
			return fmt.Errorf("insert win %d: %w", w.ID, err)
		}
	}
	for _, t := range snap.TopOfMind {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO top_of_mind (member_id, content, last_updated) VALUES (?, ?, ?)`,
			t.MemberID, t.Content, dateText(t.LastUpdated)); err != nil {
			return fmt.Errorf("insert top-of-mind %d: %w", t.MemberID, err)
		}
	}

	return tx.Commit()
}

// ReadSnapshot implements dataset.SnapshotReader.
func (r *SQLiteRepository) ReadSnapshot(ctx context.Context) (core.Snapshot, error) {
	var snap core.Snapshot
	var err error

	snap.Team, err = scanRows(ctx, r.db,
		`SELECT id, name, role, initials, color, mood, mood_text FROM team_members ORDER BY id`,
		func(rows *sql.Rows) (core.TeamMember, error) {
			var m core.TeamMember
			err := rows.Scan(&m.ID, &m.Name, &m.Role, &m.Initials, &m.Color, &m.Mood, &m.MoodText)
			return m, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read team: %w", err)
	}

	snap.Goals, err = scanRows(ctx, r.db,
		`SELECT id, title, metric, area, owner_id FROM annual_goals ORDER BY id`,
		func(rows *sql.Rows) (core.AnnualGoal, error) {
			var g core.AnnualGoal
			var area string
			err := rows.Scan(&g.ID, &g.Title, &g.Metric, &area, &g.OwnerID)
			g.Area = core.FocusArea(area)
			return g, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read goals: %w", err)
	}

	snap.Deals, err = scanRows(ctx, r.db,
		`SELECT id, client, opportunity, value_cents, stage, expected_close, owner_id, notes FROM deals ORDER BY id`,
		func(rows *sql.Rows) (core.Deal, error) {
			var d core.Deal
			var stage, closeText string
			if err := rows.Scan(&d.ID, &d.Client, &d.Opportunity, &d.Value.Cents, &stage, &closeText, &d.OwnerID, &d.Notes); err != nil {
				return d, err
			}
			d.Stage = core.DealStage(stage)
			var err error
			d.ExpectedClose, err = textDate(closeText)
			return d, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read deals: %w", err)
	}

	snap.Ventures, err = scanRows(ctx, r.db,
		`SELECT id, name, description, stage, days_in_stage, target_date, next_milestone, owner_id FROM ventures ORDER BY id`,
		func(rows *sql.Rows) (core.Venture, error) {
			var v core.Venture
			var stage, targetText string
			if err := rows.Scan(&v.ID, &v.Name, &v.Description, &stage, &v.DaysInStage, &targetText, &v.NextMilestone, &v.OwnerID); err != nil {
				return v, err
			}
			v.Stage = core.VentureStage(stage)
			var err error
			v.TargetDate, err = textDate(targetText)
			return v, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read ventures: %w", err)
	}

	snap.Projects, err = scanRows(ctx, r.db,
		`SELECT id, project, client, hours_budget, hours_used, rate_cents, stage, due_date, owner_id FROM studio_projects ORDER BY id`,
		func(rows *sql.Rows) (core.StudioProject, error) {
			var p core.StudioProject
			var stage, dueText string
			if err := rows.Scan(&p.ID, &p.Project, &p.Client, &p.HoursBudget, &p.HoursUsed, &p.Rate.Cents, &stage, &dueText, &p.OwnerID); err != nil {
				return p, err
			}
			p.Stage = core.StudioStage(stage)
			var err error
			p.DueDate, err = textDate(dueText)
			return p, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read projects: %w", err)
	}

	snap.Clients, err = scanRows(ctx, r.db,
		`SELECT id, name, contact, status, active_projects, ytd_revenue_cents, last_contact, owner_id FROM clients ORDER BY id`,
		func(rows *sql.Rows) (core.Client, error) {
			var c core.Client
			var status, lastText string
			if err := rows.Scan(&c.ID, &c.Name, &c.Contact, &status, &c.ActiveProjects, &c.YTDRevenue.Cents, &lastText, &c.OwnerID); err != nil {
				return c, err
			}
			c.Status = core.ClientStatus(status)
			var err error
			c.LastContact, err = textDate(lastText)
			return c, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read clients: %w", err)
	}

	f := &snap.Finance
	err = r.db.QueryRowContext(ctx,
		`SELECT period, ytd_revenue_cents, annual_target_cents, cash_reserves_cents, cash_target_cents,
		 tax_outstanding_cents, tax_monthly_paid_cents, tax_monthly_target_cents
		 FROM finance_snapshots ORDER BY period DESC LIMIT 1`).
		Scan(&f.Period, &f.YTDRevenue.Cents, &f.AnnualTarget.Cents, &f.CashReserves.Cents,
			&f.CashTarget.Cents, &f.TaxOutstanding.Cents, &f.TaxMonthlyPaid.Cents, &f.TaxMonthlyTarget.Cents)
	if err != nil && err != sql.ErrNoRows {
		return core.Snapshot{}, fmt.Errorf("read finance snapshot: %w", err)
	}

	snap.Compliance, err = scanRows(ctx, r.db,
		`SELECT id, item, category, frequency, due_date, status, owner_id FROM compliance_items ORDER BY id`,
		func(rows *sql.Rows) (core.ComplianceItem, error) {
			var i core.ComplianceItem
			var category, status, dueText string
			if err := rows.Scan(&i.ID, &i.Item, &category, &i.Frequency, &dueText, &status, &i.OwnerID); err != nil {
				return i, err
			}
			i.Category = core.ComplianceCategory(category)
			i.Status = core.ComplianceStatus(status)
			var err error
			i.DueDate, err = textDate(dueText)
			return i, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read compliance: %w", err)
	}

	snap.Activities, err = scanRows(ctx, r.db,
		`SELECT id, description, focus_area, due_day, status, owner_id, dependencies, outcome_notes FROM weekly_activities ORDER BY id`,
		func(rows *sql.Rows) (core.WeeklyActivity, error) {
			var a core.WeeklyActivity
			var area, day, status, deps string
			if err := rows.Scan(&a.ID, &a.Description, &area, &day, &status, &a.OwnerID, &deps, &a.OutcomeNotes); err != nil {
				return a, err
			}
			a.FocusArea = core.FocusArea(area)
			a.DueDay = core.Weekday(day)
			a.Status = core.ActivityStatus(status)
			var err error
			a.Dependencies, err = splitIDs(deps)
			return a, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read activities: %w", err)
	}

	snap.MustConquer, err = scanRows(ctx, r.db,
		`SELECT id, title, linked_goal_id, rallied_ids FROM must_conquer ORDER BY id`,
		func(rows *sql.Rows) (core.MustConquer, error) {
			var mc core.MustConquer
			var rallied string
			if err := rows.Scan(&mc.ID, &mc.Title, &mc.LinkedGoalID, &rallied); err != nil {
				return mc, err
			}
			var err error
			mc.RalliedIDs, err = splitIDs(rallied)
			return mc, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read must-conquer: %w", err)
	}

	snap.Wins, err = scanRows(ctx, r.db,
		`SELECT id, author_id, content, created_at, clapper_ids FROM wins ORDER BY id`,
		func(rows *sql.Rows) (core.Win, error) {
			var w core.Win
			var createdText, clappers string
			if err := rows.Scan(&w.ID, &w.AuthorID, &w.Content, &createdText, &clappers); err != nil {
				return w, err
			}
			var err error
			if w.CreatedAt, err = textDate(createdText); err != nil {
				return w, err
			}
			w.ClapperIDs, err = splitIDs(clappers)
			return w, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read wins: %w", err)
	}

	snap.TopOfMind, err = scanRows(ctx, r.db,
		`SELECT member_id, content, last_updated FROM top_of_mind ORDER BY member_id`,
		func(rows *sql.Rows) (core.TopOfMind, error) {
			var t core.TopOfMind
			var updatedText string
			if err := rows.Scan(&t.MemberID, &t.Content, &updatedText); err != nil {
				return t, err
			}
			var err error
			t.LastUpdated, err = textDate(updatedText)
			return t, err
		})
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read top-of-mind: %w", err)
	}

	if err := snap.Validate(); err != nil {
		return core.Snapshot{}, fmt.Errorf("validate snapshot: %w", err)
	}
	return snap, nil
}

func scanRows[T any](ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) (T, error)) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func dateText(d core.Date) string {
	if d.IsEmpty() {
		return ""
	}
	return d.Format("2006-01-02")
}

func textDate(s string) (core.Date, error) {
	if s == "" {
		return core.Date{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return core.Date{}, fmt.Errorf("bad date %q", s)
	}
	return core.Date{Time: t}, nil
}

func joinIDs(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id list %q", s)
		}
		out = append(out, id)
	}
	return out, nil
}
