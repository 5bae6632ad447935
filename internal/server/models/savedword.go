package models

import (
	"bytes"
	"encoding/json"
	"time"
)

type SavedWord struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Word      string    `json:"word"`
	Meaning   string    `json:"meaning"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"createdAt"`
}

// SavedWordPatch describes a partial update. Empty Word or Meaning keep the
// stored value.
type SavedWordPatch struct {
	Word    string         `json:"word"`
	Meaning string         `json:"meaning"`
	Notes   OptionalString `json:"notes"`
}

// OptionalString distinguishes an absent JSON field (Set false) from an
// explicit null (Set true, Value nil) and a value.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(b, []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// Apply resolves the patched notes against the current value.
func (o OptionalString) Apply(current *string) *string {
	if !o.Set {
		return current
	}
	return o.Value
}
