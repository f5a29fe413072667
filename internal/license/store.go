package license

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ausocean/utils/logging"
)

// ResultCode classifies an activation outcome
type ResultCode string

const (
	CodeActivated   ResultCode = "activated"
	CodeExpired     ResultCode = "expired"
	CodeInvalidKey  ResultCode = "invalid_key"
	CodeWriteFailed ResultCode = "write_failed"
)

// Activation messages
const (
	MsgActivated   = "activation succeeded"
	MsgExpired     = "license expired"
	MsgInvalidKey  = "invalid activation key"
	MsgWriteFailed = "failed to save license"
)

// Result is returned by Activate
type Result struct {
	Success bool
	Code    ResultCode
	Message string
}

// Store reads and writes the license record at a fixed path
type Store struct {
	mu   sync.Mutex
	path string
	log  logging.Logger
	now  func() time.Time
}

// NewStore creates a store backed by the file at path
func NewStore(path string, log logging.Logger) *Store {
	return &Store{path: path, log: log, now: time.Now}
}

// Path returns the license file location
func (s *Store) Path() string {
	return s.path
}

// SetDefaultTrial persists a one-month trial starting now
func (s *Store) SetDefaultTrial() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setDefaultTrialLocked()
}

func (s *Store) setDefaultTrialLocked() bool {
	now := s.now()
	rec := Record{
		ExpirationDate: FormatISO(now.AddDate(0, 1, 0)),
		LastCheck:      FormatISO(now),
		IsTrial:        true,
	}
	if err := s.writeLocked(&rec); err != nil {
		s.log.Error("failed to write trial license", "path", s.path, "error", err.Error())
		return false
	}
	s.log.Info("trial license created", "expires", rec.ExpirationDate)
	return true
}

// Activate validates key and stores the license it carries.
// An expired key is still stored so the expiry is visible to the user.
func (s *Store) Activate(key string) Result {
	payload, exp, err := DecodeKey(key)
	if err != nil {
		s.log.Warning("activation key rejected", "error", err.Error())
		return Result{Code: CodeInvalidKey, Message: MsgInvalidKey}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	rec := Record{
		ExpirationDate: payload.ExpirationDate,
		LastCheck:      FormatISO(now),
		IsTrial:        false,
		LicenseKey:     key,
	}
	if err := s.writeLocked(&rec); err != nil {
		s.log.Error("failed to write license", "path", s.path, "error", err.Error())
		return Result{Code: CodeWriteFailed, Message: MsgWriteFailed}
	}

	if now.After(exp) {
		s.log.Warning("activated license is already expired", "expires", payload.ExpirationDate)
		return Result{Code: CodeExpired, Message: MsgExpired}
	}
	s.log.Info("license activated", "expires", payload.ExpirationDate)
	return Result{Success: true, Code: CodeActivated, Message: MsgActivated}
}

// Read returns the stored record, creating a trial when none exists.
// It returns nil when the file cannot be read or parsed.
func (s *Store) Read() *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

func (s *Store) readLocked() *Record {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		if !s.setDefaultTrialLocked() {
			return nil
		}
		data, err = os.ReadFile(s.path)
	}
	if err != nil {
		s.log.Error("failed to read license", "path", s.path, "error", err.Error())
		return nil
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		s.log.Error("failed to parse license", "path", s.path, "error", err.Error())
		return nil
	}
	return &rec
}

// IsValid reports whether the current license has not expired
func (s *Store) IsValid() bool {
	rec := s.Read()
	if rec == nil {
		return false
	}
	return rec.ValidAt(s.now())
}

// ExpirationDate returns the stored expiration string, or "" when unavailable
func (s *Store) ExpirationDate() string {
	rec := s.Read()
	if rec == nil {
		return ""
	}
	return rec.ExpirationDate
}

// IsTrial reports whether the current license is a trial
func (s *Store) IsTrial() bool {
	rec := s.Read()
	return rec != nil && rec.IsTrial
}

// Touch stamps lastCheck with the current time and returns the record's validity
func (s *Store) Touch() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.readLocked()
	if rec == nil {
		return false
	}
	now := s.now()
	rec.LastCheck = FormatISO(now)
	if err := s.writeLocked(rec); err != nil {
		s.log.Warning("failed to stamp license check", "error", err.Error())
	}
	return rec.ValidAt(now)
}

func (s *Store) writeLocked(rec *Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode license: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create license directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write license file: %w", err)
	}
	return nil
}
