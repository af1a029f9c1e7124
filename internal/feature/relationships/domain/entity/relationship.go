// Package entity defines the relationship map records owned by a user.
package entity

import (
	"encoding/json"
	"time"
)

// Status describes how a connection is going.
type Status string

const (
	StatusOnTrack  Status = "on track"
	StatusStrained Status = "strained"
)

// ParseStatus accepts the wire spelling of a status.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusOnTrack, StatusStrained:
		return Status(s), true
	}
	return "", false
}

// Wire keys of Details. encoding/json rejects these runes in struct tags, so
// Details marshals itself.
const (
	keyStrengths = "+"
	keyStruggles = "∆"
	keyHopes     = "→"
)

// Details holds the three reflection prompts of a mapped connection.
type Details struct {
	Strengths string `validate:"required"`
	Struggles string `validate:"required"`
	Hopes     string `validate:"required"`
}

// MarshalJSON writes Details as {"+", "∆", "→"}.
func (d Details) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		keyStrengths: d.Strengths,
		keyStruggles: d.Struggles,
		keyHopes:     d.Hopes,
	})
}

// UnmarshalJSON reads the {"+", "∆", "→"} form. Unknown keys are ignored.
func (d *Details) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	if m == nil {
		return nil
	}
	*d = Details{
		Strengths: m[keyStrengths],
		Struggles: m[keyStruggles],
		Hopes:     m[keyHopes],
	}
	return nil
}

// Relationship is one mapped connection of a user.
type Relationship struct {
	ID          string
	OwnerEmail  string
	Name        string
	Description string
	Status      Status
	Details     Details
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
