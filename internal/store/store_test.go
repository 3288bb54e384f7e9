package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gauciv/cardea/pkg/sdk"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewAt(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return s
}

func TestBearerTokenRoundTrip(t *testing.T) {
	s := newTestStore(t)

	token, err := s.BearerToken()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if token != "" {
		t.Fatalf("expected empty token on fresh store, got %q", token)
	}

	if err := s.SetBearerToken("tok-123"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	token, err = s.BearerToken()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("expected tok-123, got %q", token)
	}
}

func TestUserRecordRoundTrip(t *testing.T) {
	s := newTestStore(t)

	user, err := s.UserRecord()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil on fresh store, got %#v", user)
	}

	want := &sdk.UserRecord{ID: "1", Email: "a@b.com", FullName: "A B"}
	if err := s.SetUserRecord(want); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	user, err = s.UserRecord()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if user.ID != "1" || user.Email != "a@b.com" || user.FullName != "A B" {
		t.Fatalf("record mismatch: %#v", user)
	}
}

func TestCorruptUserRecord(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, userFile), []byte("{not json"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	_, err := s.UserRecord()
	if !errors.Is(err, sdk.ErrCorruptLocalState) {
		t.Fatalf("expected ErrCorruptLocalState, got %v", err)
	}
}

func TestCorruptBypassReadsAsAbsent(t *testing.T) {
	s := newTestStore(t)
	if err := os.WriteFile(filepath.Join(s.dir, bypassFile), []byte("garbage"), 0600); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	rec, err := s.Bypass()
	if err != nil {
		t.Fatalf("expected no error for corrupt bypass, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record, got %#v", rec)
	}
}

func TestClearLocalCredentialLeavesBypass(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetBearerToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUserRecord(&sdk.UserRecord{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBypass(&BypassRecord{Enabled: true}); err != nil {
		t.Fatal(err)
	}

	if err := s.ClearLocalCredential(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	token, _ := s.BearerToken()
	if token != "" {
		t.Fatalf("expected token cleared, got %q", token)
	}
	user, _ := s.UserRecord()
	if user != nil {
		t.Fatalf("expected user cleared, got %#v", user)
	}
	rec, _ := s.Bypass()
	if rec == nil || !rec.Enabled {
		t.Fatal("bypass record should survive local-credential clear")
	}
}

func TestWipeIsTotalButSparesOnboarding(t *testing.T) {
	s := newTestStore(t)
	if err := s.SetBearerToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetUserRecord(&sdk.UserRecord{ID: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetBypass(&BypassRecord{Enabled: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetOnboardingSeen(); err != nil {
		t.Fatal(err)
	}

	if err := s.Wipe(); err != nil {
		t.Fatalf("wipe failed: %v", err)
	}

	token, _ := s.BearerToken()
	user, _ := s.UserRecord()
	rec, _ := s.Bypass()
	if token != "" || user != nil || rec != nil {
		t.Fatalf("wipe was not total: token=%q user=%#v bypass=%#v", token, user, rec)
	}
	if !s.OnboardingSeen() {
		t.Fatal("onboarding flag should survive wipe")
	}
}

func TestWipeOnEmptyStore(t *testing.T) {
	s := newTestStore(t)
	if err := s.Wipe(); err != nil {
		t.Fatalf("wipe on empty store failed: %v", err)
	}
}
