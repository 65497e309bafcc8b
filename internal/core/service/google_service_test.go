package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/glowdesk/booking-system/internal/core/domain"
)

// stubStateStore tracks issued states in memory and consumes each at most
// once, mirroring the Redis-backed behaviour.
type stubStateStore struct {
	states map[string]bool
	err    error
}

func newStubStateStore() *stubStateStore {
	return &stubStateStore{states: make(map[string]bool)}
}

func (s *stubStateStore) Issue(_ context.Context, state string, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.states[state] = true
	return nil
}

func (s *stubStateStore) Consume(_ context.Context, state string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	if s.states[state] {
		delete(s.states, state)
		return true, nil
	}
	return false, nil
}

func newTestGoogleService(repo *stubUserRepo, states *stubStateStore) *GoogleService {
	return NewGoogleService(GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/auth/google/callback",
	}, repo, NewTokenService("test-secret", time.Hour), states, zerolog.Nop())
}

func TestGoogleService_EnabledPredicate(t *testing.T) {
	repo := newStubUserRepo()
	states := newStubStateStore()

	if !newTestGoogleService(repo, states).Enabled() {
		t.Fatalf("expected configured provider to be enabled")
	}

	disabled := NewGoogleService(GoogleConfig{}, repo, NewTokenService("s", time.Hour), states, zerolog.Nop())
	if disabled.Enabled() {
		t.Fatalf("expected empty credentials to disable the provider")
	}

	half := NewGoogleService(GoogleConfig{ClientID: "only-id"}, repo, NewTokenService("s", time.Hour), states, zerolog.Nop())
	if half.Enabled() {
		t.Fatalf("expected provider without secret to be disabled")
	}
}

func TestGoogleService_AuthCodeURL_Disabled(t *testing.T) {
	svc := NewGoogleService(GoogleConfig{}, newStubUserRepo(), NewTokenService("s", time.Hour), newStubStateStore(), zerolog.Nop())

	if _, err := svc.AuthCodeURL(context.Background()); err != domain.ErrOAuthNotConfigured {
		t.Fatalf("expected ErrOAuthNotConfigured, got %v", err)
	}
}

func TestGoogleService_AuthCodeURL_CarriesStoredState(t *testing.T) {
	states := newStubStateStore()
	svc := newTestGoogleService(newStubUserRepo(), states)

	url, err := svc.AuthCodeURL(context.Background())
	if err != nil {
		t.Fatalf("AuthCodeURL failed: %v", err)
	}
	if !strings.Contains(url, "state=") {
		t.Fatalf("consent URL missing state parameter: %s", url)
	}
	if len(states.states) != 1 {
		t.Fatalf("expected exactly one stored state, got %d", len(states.states))
	}
	for state := range states.states {
		if !strings.Contains(url, state) {
			t.Fatalf("stored state %q not present in URL %s", state, url)
		}
	}
}

func TestGoogleService_Exchange_RejectsUnknownState(t *testing.T) {
	svc := newTestGoogleService(newStubUserRepo(), newStubStateStore())

	if _, _, err := svc.Exchange(context.Background(), "never-issued", "code"); err != domain.ErrInvalidOAuthState {
		t.Fatalf("expected ErrInvalidOAuthState, got %v", err)
	}
}

func TestGoogleService_Exchange_StateIsSingleUse(t *testing.T) {
	states := newStubStateStore()
	svc := newTestGoogleService(newStubUserRepo(), states)

	states.states["once"] = true
	ok, err := states.Consume(context.Background(), "once")
	if err != nil || !ok {
		t.Fatalf("first consume should succeed, got ok=%v err=%v", ok, err)
	}

	// The second presentation of the same state must be rejected before any
	// network exchange is attempted.
	if _, _, err := svc.Exchange(context.Background(), "once", "code"); err != domain.ErrInvalidOAuthState {
		t.Fatalf("expected ErrInvalidOAuthState on replay, got %v", err)
	}
}

func TestGoogleService_ResolveIdentity_ReusesGoogleAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestGoogleService(repo, newStubStateStore())

	seeded, err := repo.Create(context.Background(), &domain.User{
		Email:        "g@example.com",
		Name:         "G",
		Role:         domain.RoleClient,
		GoogleID:     "sub-1",
		AuthProvider: domain.ProviderGoogle,
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	user, err := svc.resolveIdentity(context.Background(), &googleProfile{Sub: "sub-1", Email: "g@example.com"})
	if err != nil {
		t.Fatalf("resolveIdentity failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("expected existing account to be reused, got %+v", user)
	}
}

func TestGoogleService_ResolveIdentity_RefusesLocalEmailTakeover(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestGoogleService(repo, newStubStateStore())

	if _, err := repo.Create(context.Background(), &domain.User{
		Email:        "alice@example.com",
		Name:         "Alice",
		Role:         domain.RoleClient,
		PasswordHash: "hash",
		AuthProvider: domain.ProviderLocal,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	_, err := svc.resolveIdentity(context.Background(), &googleProfile{Sub: "sub-9", Email: "Alice@Example.com"})
	if err != domain.ErrEmailAlreadyLinked {
		t.Fatalf("expected ErrEmailAlreadyLinked, got %v", err)
	}
}

func TestGoogleService_ResolveIdentity_CreatesClientUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestGoogleService(repo, newStubStateStore())

	user, err := svc.resolveIdentity(context.Background(), &googleProfile{
		Sub:     "sub-7",
		Email:   "New@Example.com",
		Name:    "New User",
		Picture: "https://example.com/p.png",
	})
	if err != nil {
		t.Fatalf("resolveIdentity failed: %v", err)
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected normalized email, got %q", user.Email)
	}
	if user.Role != domain.RoleClient {
		t.Fatalf("expected client role, got %q", user.Role)
	}
	if user.AuthProvider != domain.ProviderGoogle || user.GoogleID != "sub-7" {
		t.Fatalf("expected google-provider account, got %+v", user)
	}
	if user.PasswordHash != "" {
		t.Fatalf("google account must not carry a password hash")
	}
}

func TestGoogleService_ResolveIdentity_RequiresSubjectAndEmail(t *testing.T) {
	svc := newTestGoogleService(newStubUserRepo(), newStubStateStore())

	if _, err := svc.resolveIdentity(context.Background(), &googleProfile{Email: "a@b.com"}); err == nil {
		t.Fatalf("expected error for missing subject")
	}
	if _, err := svc.resolveIdentity(context.Background(), &googleProfile{Sub: "sub-1"}); err == nil {
		t.Fatalf("expected error for missing email")
	}
}

func TestRandomState_Uniqueness(t *testing.T) {
	a, err := randomState()
	if err != nil {
		t.Fatalf("randomState failed: %v", err)
	}
	b, err := randomState()
	if err != nil {
		t.Fatalf("randomState failed: %v", err)
	}
	if a == b {
		t.Fatalf("expected distinct states")
	}
	if len(a) < 40 {
		t.Fatalf("state unexpectedly short: %d chars", len(a))
	}
}
