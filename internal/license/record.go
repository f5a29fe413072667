// Package license implements the local, time-limited license gate: the on-disk
// license record, activation keys, the trial fallback and a periodic re-check.
//
// Keys are base64 of a JSON payload with no signature. Anyone can mint one;
// the scheme is kept as-is for compatibility with keys already issued.
package license

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts
const (
	// ISOLayout matches JavaScript's Date.prototype.toISOString
	ISOLayout  = "2006-01-02T15:04:05.000Z"
	DateLayout = "2006-01-02"
)

// Record is the persisted license.json document
type Record struct {
	ExpirationDate string `json:"expirationDate"`
	LastCheck      string `json:"lastCheck"`
	IsTrial        bool   `json:"isTrial"`
	LicenseKey     string `json:"licenseKey,omitempty"`
}

// Expiration parses the stored expiration date
func (r *Record) Expiration() (time.Time, error) {
	return ParseDate(r.ExpirationDate)
}

// ValidAt reports whether the record has not expired at t
func (r *Record) ValidAt(t time.Time) bool {
	exp, err := r.Expiration()
	if err != nil {
		return false
	}
	return !t.After(exp)
}

// layouts tried by ParseDate; the boolean marks layouts read in local time
var layouts = []struct {
	layout string
	local  bool
}{
	{time.RFC3339Nano, false},
	{"2006-01-02T15:04:05", true},
	{"2006-01-02T15:04", true},
	{DateLayout, false},
}

// ParseDate accepts ISO-8601 timestamps and plain YYYY-MM-DD dates.
// Plain dates are midnight UTC; timestamps without a zone are local time.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, l := range layouts {
		loc := time.UTC
		if l.local {
			loc = time.Local
		}
		if t, err := time.ParseInLocation(l.layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatISO renders t the way the license file stores timestamps
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}
