package license

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ausocean/utils/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "license.json"), (*logging.TestLogger)(t))
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2025-12-31", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"2025-04-15T10:30:00.000Z", time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC), true},
		{"2025-04-15T10:30:00Z", time.Date(2025, 4, 15, 10, 30, 0, 0, time.UTC), true},
		{" 2025-12-31 ", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not a date", time.Time{}, false},
		{"2025-13-40", time.Time{}, false},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%q: got %v want %v", tt.in, got, tt.want)
	}
}

func TestKeyRoundTrip(t *testing.T) {
	key := generateKeyAt("2025-12-31", fixedNow)

	payload, exp, err := DecodeKey(key)
	require.NoError(t, err)
	assert.Equal(t, "2025-12-31", payload.ExpirationDate)
	assert.Equal(t, "2025-03-15T10:30:00.000Z", payload.Timestamp)
	assert.True(t, exp.Equal(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)))

	// Keys pasted without padding or wrapped over lines still decode.
	unpadded := base64.RawStdEncoding.EncodeToString(mustDecode(t, key))
	_, _, err = DecodeKey(unpadded[:10] + "\n" + unpadded[10:])
	assert.NoError(t, err)
}

func mustDecode(t *testing.T, key string) []byte {
	t.Helper()
	b, err := base64.StdEncoding.DecodeString(key)
	require.NoError(t, err)
	return b
}

func TestDecodeKeyInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"not base64":   "!!!not-base64!!!",
		"not json":     base64.StdEncoding.EncodeToString([]byte("hello")),
		"bad date":     base64.StdEncoding.EncodeToString([]byte(`{"expirationDate":"soon","timestamp":"x"}`)),
		"missing date": base64.StdEncoding.EncodeToString([]byte(`{"timestamp":"x"}`)),
	}
	for name, key := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := DecodeKey(key)
			assert.Error(t, err)
		})
	}
}

func TestReadCreatesTrial(t *testing.T) {
	s := newTestStore(t)

	rec := s.Read()
	require.NotNil(t, rec)
	assert.True(t, rec.IsTrial)
	assert.Equal(t, "2025-04-15T10:30:00.000Z", rec.ExpirationDate)
	assert.Equal(t, "2025-03-15T10:30:00.000Z", rec.LastCheck)
	assert.Empty(t, rec.LicenseKey)

	_, err := os.Stat(s.Path())
	require.NoError(t, err, "trial should be persisted")
	assert.True(t, s.IsValid())
	assert.True(t, s.IsTrial())
}

func TestTrialExpires(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.SetDefaultTrial())

	s.now = func() time.Time { return fixedNow.AddDate(0, 1, 0) }
	assert.True(t, s.IsValid(), "valid on the expiration instant")

	s.now = func() time.Time { return fixedNow.AddDate(0, 1, 1) }
	assert.False(t, s.IsValid())
}

func TestActivate(t *testing.T) {
	s := newTestStore(t)
	key := generateKeyAt("2025-12-31", fixedNow)

	res := s.Activate(key)
	assert.Equal(t, Result{Success: true, Code: CodeActivated, Message: MsgActivated}, res)

	rec := s.Read()
	require.NotNil(t, rec)
	assert.False(t, rec.IsTrial)
	assert.Equal(t, "2025-12-31", rec.ExpirationDate)
	assert.Equal(t, key, rec.LicenseKey)
	assert.True(t, s.IsValid())
	assert.Equal(t, "2025-12-31", s.ExpirationDate())
}

func TestActivateExpiredKeyIsStored(t *testing.T) {
	s := newTestStore(t)

	res := s.Activate(generateKeyAt("2024-01-01", fixedNow))
	assert.False(t, res.Success)
	assert.Equal(t, CodeExpired, res.Code)
	assert.Equal(t, MsgExpired, res.Message)

	assert.Equal(t, "2024-01-01", s.ExpirationDate())
	assert.False(t, s.IsValid())
}

func TestActivateInvalidKeyLeavesFileUntouched(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.SetDefaultTrial())
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	res := s.Activate("garbage")
	assert.Equal(t, Result{Code: CodeInvalidKey, Message: MsgInvalidKey}, res)

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestActivateWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	s := NewStore(filepath.Join(blocker, "license.json"), (*logging.TestLogger)(t))
	s.now = func() time.Time { return fixedNow }

	res := s.Activate(generateKeyAt("2025-12-31", fixedNow))
	assert.False(t, res.Success)
	assert.Equal(t, CodeWriteFailed, res.Code)

	assert.Nil(t, s.Read())
	assert.False(t, s.IsValid())
	assert.False(t, s.SetDefaultTrial())
}

func TestCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	assert.Nil(t, s.Read())
	assert.False(t, s.IsValid())
	assert.Equal(t, "", s.ExpirationDate())
}

func TestUnparseableExpirationIsInvalid(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte(`{"expirationDate":"someday","lastCheck":"","isTrial":false}`), 0o644))

	assert.NotNil(t, s.Read())
	assert.False(t, s.IsValid())
}

func TestTouchStampsLastCheck(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.SetDefaultTrial())

	later := fixedNow.Add(2 * time.Hour)
	s.now = func() time.Time { return later }
	assert.True(t, s.Touch())
	assert.Equal(t, FormatISO(later), s.Read().LastCheck)
}

func TestWatcherReportsFlip(t *testing.T) {
	s := newTestStore(t)
	require.True(t, s.SetDefaultTrial())

	var changes []bool
	w, err := NewWatcher(s, "", func(valid bool) { changes = append(changes, valid) }, (*logging.TestLogger)(t))
	require.NoError(t, err)

	assert.True(t, w.Check())
	assert.Empty(t, changes, "first check only records state")

	s.now = func() time.Time { return fixedNow.AddDate(0, 2, 0) }
	assert.False(t, w.Check())
	assert.False(t, w.Check())
	assert.Equal(t, []bool{false}, changes)
}

func TestWatcherBadSchedule(t *testing.T) {
	_, err := NewWatcher(newTestStore(t), "every so often", nil, (*logging.TestLogger)(t))
	assert.Error(t, err)
}

func TestExpirationFor(t *testing.T) {
	tests := []struct {
		duration string
		want     string
	}{
		{DurationMonth, "2025-04-15"},
		{DurationQuarter, "2025-06-15"},
		{DurationYear, "2026-03-15"},
	}
	for _, tt := range tests {
		got, err := ExpirationFor(tt.duration, fixedNow)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.duration)
	}

	_, err := ExpirationFor("week", fixedNow)
	assert.Error(t, err)
}

func TestWriteLicenseFile(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteLicenseFile(dir, "2025-12-31", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "license.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"expirationDate\": \"2025-12-31\"")

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]any{
		"expirationDate": "2025-12-31",
		"lastCheck":      "2025-03-15T10:30:00.000Z",
	}, got)

	s := NewStore(path, (*logging.TestLogger)(t))
	s.now = func() time.Time { return fixedNow }
	assert.True(t, s.IsValid())
	assert.False(t, s.IsTrial())

	_, err = WriteLicenseFile(dir, "whenever", fixedNow)
	assert.Error(t, err)
}

func TestWriteLicenseFileKeepsExistingOnBadDate(t *testing.T) {
	dir := t.TempDir()
	path, err := WriteLicenseFile(dir, "2025-12-31", fixedNow)
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	for _, date := range []string{"", "31/12/2025", "2025-13-01"} {
		_, err := WriteLicenseFile(dir, date, fixedNow)
		assert.Error(t, err, date)
	}

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
