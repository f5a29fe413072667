package license

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// License durations understood by ExpirationFor
const (
	DurationMonth   = "month"
	DurationQuarter = "quarter"
	DurationYear    = "year"
)

// ExpirationFor returns the UTC expiration date (YYYY-MM-DD) of a license of the given duration starting at now
func ExpirationFor(duration string, now time.Time) (string, error) {
	now = now.UTC()
	var exp time.Time
	switch duration {
	case DurationMonth:
		exp = now.AddDate(0, 1, 0)
	case DurationQuarter:
		exp = now.AddDate(0, 3, 0)
	case DurationYear:
		exp = now.AddDate(1, 0, 0)
	default:
		return "", fmt.Errorf("invalid duration %q, use %s, %s or %s", duration, DurationMonth, DurationQuarter, DurationYear)
	}
	return exp.Format(DateLayout), nil
}

// fileRecord is the hand-distributed license.json form
type fileRecord struct {
	ExpirationDate string `json:"expirationDate"`
	LastCheck      string `json:"lastCheck"`
}

// WriteLicenseFile writes an indented license.json into dir and returns its path.
// A date ParseDate rejects is refused and any existing file is left untouched.
func WriteLicenseFile(dir, expirationDate string, now time.Time) (string, error) {
	if _, err := ParseDate(expirationDate); err != nil {
		return "", fmt.Errorf("invalid expiration date: %w", err)
	}
	data, err := json.MarshalIndent(fileRecord{
		ExpirationDate: expirationDate,
		LastCheck:      FormatISO(now),
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode license: %w", err)
	}
	path := filepath.Join(dir, "license.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
