package core

import (
	"errors"
	"testing"
)

func TestDealValidate(t *testing.T) {
	valid := Deal{ID: 1, Client: "Nedbank", Value: Rands(320_000), Stage: StageLead}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid deal: %v", err)
	}

	tests := []struct {
		name string
		deal Deal
		want error
	}{
		{"unknown stage", Deal{Client: "x", Stage: "QUALIFIED"}, ErrInvalidStage},
		{"negative value", Deal{Client: "x", Stage: StageLead, Value: Money{Cents: -1}}, ErrNegativeAmount},
		{"empty client", Deal{Client: " ", Stage: StageLead}, ErrEmptyName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.deal.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestVentureValidate(t *testing.T) {
	if err := (Venture{Name: "Briansfomo", Stage: VentureMVPBuild, DaysInStage: 23}).Validate(); err != nil {
		t.Fatalf("valid venture: %v", err)
	}
	if err := (Venture{Name: "x", Stage: VentureConcept, DaysInStage: -1}).Validate(); !errors.Is(err, ErrNegativeDays) {
		t.Errorf("got %v, want ErrNegativeDays", err)
	}
}

func TestStudioProjectOverBudgetIsValid(t *testing.T) {
	p := StudioProject{Project: "Procurement System", Stage: StudioInProgress, HoursBudget: 40, HoursUsed: 52}
	if err := p.Validate(); err != nil {
		t.Errorf("over-budget project must validate, got %v", err)
	}
}

func TestDealStageOpen(t *testing.T) {
	tests := []struct {
		stage DealStage
		want  bool
	}{
		{StageLead, true},
		{StageNegotiation, true},
		{StageWon, false},
		{StageLost, false},
		{DealStage("BOGUS"), false},
	}
	for _, tt := range tests {
		if got := tt.stage.Open(); got != tt.want {
			t.Errorf("%s.Open() = %v, want %v", tt.stage, got, tt.want)
		}
	}
}

func TestSnapshotMemberLookup(t *testing.T) {
	s := Snapshot{Team: []TeamMember{{ID: 1, Name: "Zweli Ntshona", Initials: "ZN"}}}

	if m, ok := s.Member(1); !ok || m.Initials != "ZN" {
		t.Errorf("Member(1) = %+v, %v", m, ok)
	}
	if _, ok := s.Member(99); ok {
		t.Error("dangling id must resolve to not-found")
	}
}

func TestSnapshotValidateFailsFast(t *testing.T) {
	s := Snapshot{
		Deals: []Deal{{ID: 7, Client: "IBM", Stage: "SHORTLIST"}},
	}
	if err := s.Validate(); !errors.Is(err, ErrInvalidStage) {
		t.Errorf("got %v, want ErrInvalidStage", err)
	}
}

func TestBadgeFallback(t *testing.T) {
	b := DealStage("SHORTLIST").Badge()
	if b.Tone != ToneMuted || b.Label != "SHORTLIST" {
		t.Errorf("unknown stage badge = %+v", b)
	}
	if got := StatusOverdue.Badge(); got.Tone != ToneError {
		t.Errorf("OVERDUE badge tone = %s, want error", got.Tone)
	}
	if got := AreaPurposePlatform.Label(); got != "Purpose & Platform" {
		t.Errorf("focus area label = %q", got)
	}
}
