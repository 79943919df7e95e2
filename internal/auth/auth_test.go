package auth

import (
	"testing"
	"time"

	"github.com/payroll-portal-api/internal/domain"
)

func TestSessionStore_CreateAndResolve(t *testing.T) {
	store := NewSessionStore(time.Hour)

	session := store.Create("101", domain.RoleAdmin)
	if session.Token == "" {
		t.Fatal("expected non-empty token")
	}

	principal, err := store.Resolve(session.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if principal.EmployeeID != "101" || !principal.IsAdmin() {
		t.Errorf("unexpected principal: %+v", principal)
	}
}

func TestSessionStore_UnknownToken(t *testing.T) {
	store := NewSessionStore(time.Hour)

	_, err := store.Resolve("no-such-token")
	if err != domain.ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionStore_Expiry(t *testing.T) {
	store := NewSessionStore(time.Minute)
	session := store.Create("101", domain.RoleEmployee)

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err := store.Resolve(session.Token)
	if err != domain.ErrSessionExpired {
		t.Errorf("expected ErrSessionExpired, got %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	store := NewSessionStore(time.Hour)
	session := store.Create("101", domain.RoleEmployee)

	store.Delete(session.Token)

	if _, err := store.Resolve(session.Token); err == nil {
		t.Error("expected error after delete")
	}
}

func TestOTPStore_IssueAndVerify(t *testing.T) {
	store := NewOTPStore(time.Minute)

	code := store.Issue("101")
	if len(code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", code)
	}

	if !store.Verify("101", code) {
		t.Error("expected code to verify")
	}
	// код одноразовый
	if store.Verify("101", code) {
		t.Error("expected code to be consumed")
	}
}

func TestOTPStore_WrongCode(t *testing.T) {
	store := NewOTPStore(time.Minute)
	code := store.Issue("101")

	if store.Verify("101", "000000") && code != "000000" {
		t.Error("wrong code must not verify")
	}
	if store.Verify("102", code) {
		t.Error("code must be bound to the employee")
	}
}

func TestOTPStore_Expiry(t *testing.T) {
	store := NewOTPStore(time.Minute)
	code := store.Issue("101")

	store.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if store.Verify("101", code) {
		t.Error("expired code must not verify")
	}
}

func TestOTPStore_ReissueReplaces(t *testing.T) {
	store := NewOTPStore(time.Minute)

	first := store.Issue("101")
	second := store.Issue("101")

	if first != second && store.Verify("101", first) {
		t.Error("previous code must be replaced")
	}
	if !store.Verify("101", second) {
		t.Error("latest code must verify")
	}
}
