// Package store persists per-adapter credential records under the
// user's Cardea directory. Each adapter only ever touches its own
// records; Wipe is the one operation that crosses adapter boundaries.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gauciv/cardea/pkg/sdk"
)

const (
	tokenFile      = "token"
	userFile       = "user.json"
	bypassFile     = "dev_bypass.json"
	onboardingFile = "onboarding_seen"
)

// Store is a file-backed credential store. One record per file,
// 0600 perms, under a 0700 directory.
type Store struct {
	dir string
}

// New creates a Store rooted at ~/.cardea.
func New() (*Store, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return NewAt(filepath.Join(home, ".cardea"))
}

// NewAt creates a Store rooted at dir, creating it if needed.
func NewAt(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create credential directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// BearerToken returns the stored data-API bearer token, or "" when
// none is stored.
func (s *Store) BearerToken() (string, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read bearer token: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// SetBearerToken persists the data-API bearer token.
func (s *Store) SetBearerToken(token string) error {
	return os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0600)
}

// UserRecord returns the stored user record, or nil when none is
// stored. A record that cannot be decoded returns ErrCorruptLocalState;
// the caller decides whether to heal.
func (s *Store) UserRecord() (*sdk.UserRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user record: %w", err)
	}
	var user sdk.UserRecord
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", sdk.ErrCorruptLocalState, err)
	}
	return &user, nil
}

// SetUserRecord persists the user record.
func (s *Store) SetUserRecord(user *sdk.UserRecord) error {
	data, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, userFile), data, 0600)
}

// ClearLocalCredential removes the bearer token and user record only.
// This is the local-credential adapter's logout; other adapters' state
// is untouched.
func (s *Store) ClearLocalCredential() error {
	if err := removeIfPresent(filepath.Join(s.dir, tokenFile)); err != nil {
		return err
	}
	return removeIfPresent(filepath.Join(s.dir, userFile))
}

// BypassRecord is the developer-bypass configuration. Never honored
// under managed hosting.
type BypassRecord struct {
	Enabled           bool            `json:"enabled"`
	SimulatedProvider string          `json:"simulated_provider,omitempty"`
	SimulatedUser     *sdk.UserRecord `json:"simulated_user,omitempty"`
}

// Bypass returns the developer-bypass record, or nil when none is
// stored. A corrupt record reads as absent; the bypass is a
// development convenience and never worth failing resolution over.
func (s *Store) Bypass() (*BypassRecord, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, bypassFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read bypass record: %w", err)
	}
	var rec BypassRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, nil
	}
	return &rec, nil
}

// SetBypass persists the developer-bypass record.
func (s *Store) SetBypass(rec *BypassRecord) error {
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode bypass record: %w", err)
	}
	return os.WriteFile(filepath.Join(s.dir, bypassFile), data, 0600)
}

// OnboardingSeen reports whether the onboarding flag is set. The flag
// is co-located with the credentials but is not an auth record.
func (s *Store) OnboardingSeen() bool {
	_, err := os.Stat(filepath.Join(s.dir, onboardingFile))
	return err == nil
}

// SetOnboardingSeen sets the onboarding flag.
func (s *Store) SetOnboardingSeen() error {
	return os.WriteFile(filepath.Join(s.dir, onboardingFile), []byte("1"), 0600)
}

// Wipe removes every adapter's credential records synchronously. The
// onboarding flag survives. Logout depends on this being total: after
// Wipe a fresh resolution must find nothing, no matter which adapter
// produced the previous identity.
func (s *Store) Wipe() error {
	for _, name := range []string{tokenFile, userFile, bypassFile} {
		if err := removeIfPresent(filepath.Join(s.dir, name)); err != nil {
			return err
		}
	}
	return nil
}

func removeIfPresent(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", filepath.Base(path), err)
	}
	return nil
}
