package users

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(ctx context.Context, u User) error {
	if u.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[u.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, errRepoNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, errRepoNotFound
}

func (r *testRepo) List(ctx context.Context) ([]User, error) {
	out := make([]User, 0, len(r.byID))
	for _, u := range r.byID {
		out = append(out, u)
	}
	return out, nil
}

func (r *testRepo) UpdateRole(ctx context.Context, id string, role Role) error {
	u, ok := r.byID[id]
	if !ok {
		return errRepoNotFound
	}
	u.Role = role
	r.byID[id] = u
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_NormalizesEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.Register(context.Background(), RegisterInput{
		Name:  "Ana",
		Email: "  Ana@X.COM ",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if u.Email != "ana@x.com" {
		t.Fatalf("expected normalized email, got %s", u.Email)
	}
	if u.Role != RoleUser {
		t.Fatalf("expected role user, got %s", u.Role)
	}
	if u.CreatedAt != now {
		t.Fatalf("expected CreatedAt = now")
	}
}

func TestService_Register_RejectsDuplicate_CaseInsensitive(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.Register(context.Background(), RegisterInput{Email: "ana@x.com"}); err != nil {
		t.Fatalf("Register #1 error: %v", err)
	}

	// Mismo email con otro case => mismo usuario => duplicado.
	_, err := svc.Register(context.Background(), RegisterInput{Email: "ANA@x.com"})
	if err != ErrDuplicate {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestService_Register_RejectsMissingEmail(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	for _, email := range []string{"", "   ", "sin-arroba"} {
		if _, err := svc.Register(context.Background(), RegisterInput{Email: email}); err != ErrInvalidInput {
			t.Fatalf("email=%q: expected ErrInvalidInput, got %v", email, err)
		}
	}
}

func TestService_MakeAdmin_PromotesOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	promoted, err := svc.MakeAdmin(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("MakeAdmin error: %v", err)
	}
	if promoted.Role != RoleAdmin {
		t.Fatalf("expected admin, got %s", promoted.Role)
	}

	// user -> admin solo una vez; re-promover es 400.
	if _, err := svc.MakeAdmin(context.Background(), u.ID); err != ErrAlreadyAdmin {
		t.Fatalf("expected ErrAlreadyAdmin, got %v", err)
	}
}

func TestService_MakeAdmin_UnknownUser(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	if _, err := svc.MakeAdmin(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_IsAdmin_ReadsStoredRole(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{Email: "ana@x.com"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	ok, err := svc.IsAdmin(context.Background(), "ANA@X.com")
	if err != nil || ok {
		t.Fatalf("expected non-admin, got ok=%v err=%v", ok, err)
	}

	if _, err := svc.MakeAdmin(context.Background(), u.ID); err != nil {
		t.Fatalf("MakeAdmin error: %v", err)
	}

	ok, err = svc.IsAdmin(context.Background(), "ana@x.com")
	if err != nil || !ok {
		t.Fatalf("expected admin, got ok=%v err=%v", ok, err)
	}
}
