package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is a local wall-clock instant persisted as ISO-8601.
// It is written as RFC 3339 with offset and also accepts the
// offset-less form produced by older data files, read as local time.
type Timestamp struct {
	time.Time
}

// At wraps t, dropping the monotonic reading.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.Round(0)}
}

// layouts without zone information, tried after RFC 3339.
var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses an ISO-8601 timestamp with or without offset.
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return At(t.Local()), nil
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return At(t), nil
		}
	}
	return Timestamp{}, fmt.Errorf("cannot parse timestamp %q", s)
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.Local().Format(time.RFC3339Nano))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}
