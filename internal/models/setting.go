package models

import (
	"encoding/json"
	"time"
)

// Setting is a key/value config row. Value is opaque JSON; shape is a
// convention enforced by callers only.
type Setting struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
