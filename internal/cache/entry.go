package cache

import (
	"encoding/json"
	"time"
)

// Entry is one cached quote payload and its lifetime.
type Entry struct {
	Key        string          `json:"key"`
	Data       json.RawMessage `json:"data"`
	CreatedAt  time.Time       `json:"created_at"`
	ExpiresAt  time.Time       `json:"expires_at"`
	TTLSeconds int             `json:"ttl_seconds"`
}

// NewEntry stamps data with now and an expiry ttl later.
func NewEntry(key string, data json.RawMessage, ttl time.Duration, now time.Time) *Entry {
	return &Entry{
		Key:        key,
		Data:       data,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
		TTLSeconds: int(ttl / time.Second),
	}
}

// ExpiredAt reports whether t is past the expiry instant.
func (e *Entry) ExpiredAt(t time.Time) bool {
	return t.After(e.ExpiresAt)
}

// AgeAt is how long the entry has existed at t.
func (e *Entry) AgeAt(t time.Time) time.Duration {
	return t.Sub(e.CreatedAt)
}

// prunableAt reports whether the entry has been expired for longer than
// grace, and so is too old to serve even as a stale fallback.
func (e *Entry) prunableAt(t time.Time, grace time.Duration) bool {
	return t.Sub(e.ExpiresAt) > grace
}

// Decode unmarshals Data into v.
func (e *Entry) Decode(v any) error {
	return json.Unmarshal(e.Data, v)
}
