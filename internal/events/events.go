// Package events fans enrichment lifecycle events out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

// Event types published by the engine.
const (
	TypeOverrideSaved       = "override_saved"
	TypeOverrideDeleted     = "override_deleted"
	TypeEnrichmentCompleted = "enrichment_completed"
	TypeConfigUpdated       = "config_updated"
)

type Event struct {
	Type      string          `json:"type"`
	Version   int             `json:"v"`
	At        time.Time       `json:"at"`
	RequestID string          `json:"request_id,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// MakeEvent renders one event as a JSON line ready for an SSE data frame.
func MakeEvent(reqID, typ string, v int, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:      typ,
		Version:   v,
		At:        time.Now().UTC(),
		RequestID: reqID,
		Data:      raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
