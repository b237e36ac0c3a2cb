package amqp

import (
	"encoding/json"
	"time"
)

// LedgerEventMessage tells the snapshot worker that an owner's ledger
// changed. It carries only the owner id; the worker reads current assets
// and liabilities from the database when it processes the event.
type LedgerEventMessage struct {
	Owner     string    `json:"owner"`
	Kind      string    `json:"kind"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerEventMessage(owner, kind string) *LedgerEventMessage {
	return &LedgerEventMessage{
		Owner:     owner,
		Kind:      kind,
		Timestamp: time.Now(),
	}
}

func (m *LedgerEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerEventMessageFromJSON(data []byte) (*LedgerEventMessage, error) {
	var msg LedgerEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
