package sdk

import (
	"reflect"
	"testing"
)

func TestUserRecordIdentity(t *testing.T) {
	user := UserRecord{ID: "1", Email: "a@b.com", FullName: "A B"}
	id := user.Identity(ProviderLocalCredential)

	if id.SubjectID != "1" {
		t.Fatalf("expected subject 1, got %q", id.SubjectID)
	}
	if id.DisplayLabel != "A B" {
		t.Fatalf("expected label from full name, got %q", id.DisplayLabel)
	}
	if id.Provider != ProviderLocalCredential {
		t.Fatalf("expected local-credential provider, got %q", id.Provider)
	}
	if !id.HasRole("authenticated") {
		t.Fatalf("expected authenticated role, got %v", id.Roles)
	}
}

func TestUserRecordIdentityFallsBackToEmail(t *testing.T) {
	user := UserRecord{ID: "2", Email: "a@b.com"}
	id := user.Identity(ProviderLocalCredential)
	if id.DisplayLabel != "a@b.com" {
		t.Fatalf("expected email label, got %q", id.DisplayLabel)
	}
}

func TestProviderManaged(t *testing.T) {
	tests := []struct {
		provider Provider
		managed  bool
	}{
		{ProviderManagedMicrosoft, true},
		{ProviderManagedGoogle, true},
		{ProviderManagedGitHub, true},
		{ProviderLocalCredential, false},
		{ProviderInteractivePopup, false},
		{ProviderDeveloperBypass, false},
	}
	for _, tt := range tests {
		if got := tt.provider.Managed(); got != tt.managed {
			t.Fatalf("%s: Managed() = %v, want %v", tt.provider, got, tt.managed)
		}
	}
}

func TestNormalizeRoles(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty defaults", nil, []string{"authenticated"}},
		{"dedupes and lowercases", []string{"Admin", "admin", "Authenticated"}, []string{"admin", "authenticated"}},
		{"drops blanks", []string{"", "viewer"}, []string{"viewer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeRoles(tt.in)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("NormalizeRoles(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
