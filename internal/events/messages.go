package events

import (
	"encoding/json"
	"time"

	"opsboard/internal/services"
)

// HealthScoreMessage carries one computed set of health scores. The
// worker publishes it whenever a recomputation changes any score, so
// downstream consumers (alerting, history) see every movement.
type HealthScoreMessage struct {
	Period    string    `json:"period"`
	BD        int       `json:"bd"`
	Ventures  int       `json:"ventures"`
	Clients   int       `json:"clients"`
	Finance   int       `json:"finance"`
	Admin     int       `json:"admin"`
	Overall   int       `json:"overall"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHealthScoreMessage builds a message from computed scores.
func NewHealthScoreMessage(period string, h services.Health) *HealthScoreMessage {
	return &HealthScoreMessage{
		Period:    period,
		BD:        h.BD,
		Ventures:  h.Ventures,
		Clients:   h.Clients,
		Finance:   h.Finance,
		Admin:     h.Admin,
		Overall:   h.Overall,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *HealthScoreMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// HealthScoreMessageFromJSON creates a message from JSON bytes
func HealthScoreMessageFromJSON(data []byte) (*HealthScoreMessage, error) {
	var msg HealthScoreMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
