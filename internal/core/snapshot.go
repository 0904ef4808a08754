package core

import "fmt"

// Snapshot is the read-only dataset every query function receives
// explicitly. There is no package-level fixture; callers inject one.
type Snapshot struct {
	Team        []TeamMember
	Goals       []AnnualGoal
	Deals       []Deal
	Ventures    []Venture
	Projects    []StudioProject
	Clients     []Client
	Finance     FinanceSnapshot
	Compliance  []ComplianceItem
	Activities  []WeeklyActivity
	MustConquer []MustConquer
	Wins        []Win
	TopOfMind   []TopOfMind
}

// Member resolves a team member id. A dangling reference yields ok=false
// rather than an error; display code renders a placeholder.
func (s Snapshot) Member(id int64) (TeamMember, bool) {
	for _, m := range s.Team {
		if m.ID == id {
			return m, true
		}
	}
	return TeamMember{}, false
}

// Goal resolves an annual goal id.
func (s Snapshot) Goal(id int64) (AnnualGoal, bool) {
	for _, g := range s.Goals {
		if g.ID == id {
			return g, true
		}
	}
	return AnnualGoal{}, false
}

// Validate checks every record's invariants. Run once at load time so
// unenumerated enum values fail fast instead of surfacing mid-query.
func (s Snapshot) Validate() error {
	for _, d := range s.Deals {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("deal %d: %w", d.ID, err)
		}
	}
	for _, v := range s.Ventures {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("venture %d: %w", v.ID, err)
		}
	}
	for _, p := range s.Projects {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("project %d: %w", p.ID, err)
		}
	}
	for _, c := range s.Clients {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("client %d: %w", c.ID, err)
		}
	}
	if err := s.Finance.Validate(); err != nil {
		return fmt.Errorf("finance snapshot %q: %w", s.Finance.Period, err)
	}
	for _, i := range s.Compliance {
		if err := i.Validate(); err != nil {
			return fmt.Errorf("compliance item %d: %w", i.ID, err)
		}
	}
	for _, a := range s.Activities {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("activity %d: %w", a.ID, err)
		}
	}
	return nil
}
