package events

import (
	"testing"

	"opsboard/internal/services"
)

func TestHealthScoreMessageRoundTrip(t *testing.T) {
	h := services.Health{BD: 24, Ventures: 85, Clients: 50, Finance: 72, Admin: 50, Overall: 55}
	msg := NewHealthScoreMessage("2026-01", h)
	if msg.Timestamp.IsZero() {
		t.Fatal("Timestamp not set")
	}

	body, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	got, err := HealthScoreMessageFromJSON(body)
	if err != nil {
		t.Fatalf("HealthScoreMessageFromJSON: %v", err)
	}
	if got.Period != "2026-01" || got.Overall != 55 || got.BD != 24 || got.Admin != 50 {
		t.Fatalf("round trip changed fields: %+v", got)
	}
}

func TestHealthScoreMessageFromJSONRejectsGarbage(t *testing.T) {
	if _, err := HealthScoreMessageFromJSON([]byte("not json")); err == nil {
		t.Fatal("expected error for malformed body")
	}
}
