package google

import (
	"testing"

	"opsboard/internal/core"
)

func TestParseDeal(t *testing.T) {
	cols := []string{"4", "IFC", "Agri value-chain study", "850000", "PROPOSAL", "2026-03-15", "1", "awaiting panel"}
	d, err := parseDeal(cols)
	if err != nil {
		t.Fatalf("parseDeal: %v", err)
	}
	if d.ID != 4 || d.Client != "IFC" {
		t.Fatalf("identity fields wrong: %+v", d)
	}
	if d.Value.Cents != 85_000_000 {
		t.Fatalf("Value.Cents = %d, want 85000000", d.Value.Cents)
	}
	if d.Stage != core.StageProposal {
		t.Fatalf("Stage = %q", d.Stage)
	}
	if d.ExpectedClose.Year() != 2026 || d.ExpectedClose.Day() != 15 {
		t.Fatalf("ExpectedClose = %v", d.ExpectedClose)
	}
}

func TestParseDealShortRow(t *testing.T) {
	// Trailing optional columns may be absent entirely.
	cols := []string{"1", "Nedbank", "ED programme", "320000", "LEAD", "", "1"}
	d, err := parseDeal(cols)
	if err != nil {
		t.Fatalf("parseDeal: %v", err)
	}
	if !d.ExpectedClose.IsEmpty() {
		t.Fatalf("blank date should parse as empty, got %v", d.ExpectedClose)
	}
	if d.Notes != "" {
		t.Fatalf("Notes = %q, want empty", d.Notes)
	}
}

func TestParseDealBadAmount(t *testing.T) {
	cols := []string{"1", "Nedbank", "ED programme", "a lot", "LEAD", "", "1"}
	if _, err := parseDeal(cols); err == nil {
		t.Fatal("parseDeal accepted non-numeric amount")
	}
}

func TestParseRands(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"850000", 85_000_000},
		{"R850000", 85_000_000},
		{"1 200 000", 120_000_000},
		{"1234,56", 123_456},
		{"1234.56", 123_456},
		{"0", 0},
	}
	for _, tt := range tests {
		m, err := parseRands(tt.in)
		if err != nil {
			t.Errorf("parseRands(%q): %v", tt.in, err)
			continue
		}
		if m.Cents != tt.want {
			t.Errorf("parseRands(%q) = %d cents, want %d", tt.in, m.Cents, tt.want)
		}
	}
	if _, err := parseRands(""); err == nil {
		t.Error("parseRands accepted empty string")
	}
}

func TestParseIDList(t *testing.T) {
	ids, err := parseIDList("2, 3,4")
	if err != nil {
		t.Fatalf("parseIDList: %v", err)
	}
	if len(ids) != 3 || ids[0] != 2 || ids[2] != 4 {
		t.Fatalf("ids = %v", ids)
	}
	ids, err = parseIDList("")
	if err != nil || ids != nil {
		t.Fatalf("blank list: ids=%v err=%v", ids, err)
	}
	if _, err := parseIDList("1,x"); err == nil {
		t.Fatal("parseIDList accepted junk")
	}
}

func TestParseActivityDependencies(t *testing.T) {
	cols := []string{"3", "Gates Q1 report", "IMPACT_DELIVERY", "THURSDAY", "PENDING", "3", "6", ""}
	a, err := parseActivity(cols)
	if err != nil {
		t.Fatalf("parseActivity: %v", err)
	}
	if len(a.Dependencies) != 1 || a.Dependencies[0] != 6 {
		t.Fatalf("Dependencies = %v", a.Dependencies)
	}
	if a.FocusArea != core.AreaImpactDelivery {
		t.Fatalf("FocusArea = %q", a.FocusArea)
	}
}

func TestParseFinance(t *testing.T) {
	row := []any{"2026-01", "1800000", "10000000", "412000", "500000", "237000", "50000", "50000"}
	f, err := parseFinance(row)
	if err != nil {
		t.Fatalf("parseFinance: %v", err)
	}
	if f.Period != "2026-01" {
		t.Fatalf("Period = %q", f.Period)
	}
	if f.AnnualTarget.Cents != 1_000_000_000_00 {
		t.Fatalf("AnnualTarget.Cents = %d", f.AnnualTarget.Cents)
	}
	if _, err := parseFinance([]any{"2026-01", "x"}); err == nil {
		t.Fatal("parseFinance accepted bad amount")
	}
}
