package sdk

import "strings"

// Provider identifies which identity source produced an Identity.
type Provider string

const (
	ProviderManagedMicrosoft Provider = "managed-microsoft"
	ProviderManagedGoogle    Provider = "managed-google"
	ProviderManagedGitHub    Provider = "managed-github"
	ProviderLocalCredential  Provider = "local-credential"
	ProviderInteractivePopup Provider = "interactive-popup"
	ProviderDeveloperBypass  Provider = "developer-bypass"
)

// Managed reports whether the provider is one of the hosting platform's
// gateway-backed providers (session owned by the platform, not by us).
func (p Provider) Managed() bool {
	switch p {
	case ProviderManagedMicrosoft, ProviderManagedGoogle, ProviderManagedGitHub:
		return true
	}
	return false
}

// Identity is the resolved, normalized view of who is logged in,
// regardless of which identity source produced it. Consumers must not
// branch on source-specific shapes; everything they need is here.
type Identity struct {
	// SubjectID is the stable per-user identifier. Opaque; its format
	// depends on the winning provider.
	SubjectID string `json:"subject_id"`
	// DisplayLabel is the human-readable name: the resolved full name
	// when available, otherwise the email.
	DisplayLabel string `json:"display_label"`
	// Roles is never empty; sources without explicit roles get
	// {"authenticated"}.
	Roles      []string          `json:"roles"`
	Provider   Provider          `json:"provider"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// HasRole reports whether the identity carries the given role.
func (id *Identity) HasRole(role string) bool {
	for _, r := range id.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// UserRecord is the backend's user object, as returned by the login and
// registration endpoints and as persisted by the credential store.
type UserRecord struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// Identity maps a backend user record to a normalized Identity with the
// given provider tag.
func (u UserRecord) Identity(provider Provider) *Identity {
	label := strings.TrimSpace(u.FullName)
	if label == "" {
		label = u.Email
	}
	attrs := map[string]string{}
	if u.Email != "" {
		attrs["email"] = u.Email
	}
	return &Identity{
		SubjectID:    u.ID,
		DisplayLabel: label,
		Roles:        NormalizeRoles(nil),
		Provider:     provider,
		Attributes:   attrs,
	}
}

// NormalizeRoles deduplicates and lowercases roles, and guarantees a
// non-empty result ({"authenticated"} when the source reported none).
func NormalizeRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		r = strings.ToLower(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		if _, ok := seen[r]; ok {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, r)
	}
	if len(out) == 0 {
		return []string{"authenticated"}
	}
	return out
}
