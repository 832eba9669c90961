package model

import (
	"encoding/json"
	"time"
)

// Timestamp is a point in time stored as Unix milliseconds, the format the
// browser build of the app wrote into its profile slot.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to millisecond precision.
func NewTimestamp(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}

	return Timestamp{Time: time.UnixMilli(t.UnixMilli())}
}

// Millis returns the Unix millisecond value, 0 for the zero time.
func (t Timestamp) Millis() int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixMilli()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Millis())
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var ms *int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}

	if ms == nil || *ms == 0 {
		t.Time = time.Time{}
		return nil
	}

	t.Time = time.UnixMilli(*ms)

	return nil
}

// Equal reports whether both timestamps denote the same millisecond.
func (t Timestamp) Equal(o Timestamp) bool {
	return t.Millis() == o.Millis()
}
