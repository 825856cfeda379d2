package pets

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListAvailable(ctx context.Context) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if !p.Adopted {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, owner string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Update(ctx context.Context, p Pet) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) MarkAdopted(ctx context.Context, id string) error {
	p, ok := r.byID[id]
	if !ok || p.Adopted {
		return ErrNotFound
	}
	p.Adopted = true
	p.Status = StatusAdopted
	r.byID[id] = p
	return nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_DefaultsAndNormalization(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), " Ana@X.com ", CreateInput{
		Name:     "Milo",
		Age:      2,
		Category: "dog",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if p.Owner != "ana@x.com" {
		t.Fatalf("expected normalized owner, got %s", p.Owner)
	}
	if p.Adopted || p.Status != StatusAvailable {
		t.Fatalf("expected available unadopted pet, got adopted=%v status=%s", p.Adopted, p.Status)
	}
	if p.CreatedAt != now || p.UpdatedAt != now {
		t.Fatalf("expected timestamps = now")
	}
}

func TestService_Create_RequiresOwnerAndName(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.Create(context.Background(), "", CreateInput{Name: "Milo"}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput sin owner, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "a@x.com", CreateInput{Name: "  "}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput sin name, got %v", err)
	}
	if _, err := svc.Create(context.Background(), "a@x.com", CreateInput{Name: "Milo", Age: -1}); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput con edad negativa, got %v", err)
	}
}

func TestService_MarkAdopted_ExactlyOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, err := svc.Create(context.Background(), "a@x.com", CreateInput{Name: "Milo"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if err := svc.MarkAdopted(context.Background(), p.ID); err != nil {
		t.Fatalf("MarkAdopted error: %v", err)
	}

	// Segunda vez: ya adoptada => NotFound (cero filas matcheadas).
	if err := svc.MarkAdopted(context.Background(), p.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second adopt, got %v", err)
	}
}

func TestService_MarkAdopted_RemovesFromAvailable(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p1, _ := svc.Create(context.Background(), "a@x.com", CreateInput{Name: "Milo"})
	p2, _ := svc.Create(context.Background(), "a@x.com", CreateInput{Name: "Luna"})

	if err := svc.MarkAdopted(context.Background(), p1.ID); err != nil {
		t.Fatalf("MarkAdopted error: %v", err)
	}

	items, err := svc.ListAvailable(context.Background())
	if err != nil {
		t.Fatalf("ListAvailable error: %v", err)
	}
	if len(items) != 1 || items[0].ID != p2.ID {
		t.Fatalf("expected only %s available, got %#v", p2.ID, items)
	}
}

func TestService_Update_AppliesPartialPatch(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	p, _ := svc.Create(context.Background(), "a@x.com", CreateInput{Name: "Milo", Location: "Lima"})

	name := "Milo II"
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.Name != "Milo II" {
		t.Fatalf("expected updated name, got %s", updated.Name)
	}
	// Campos no enviados no se tocan.
	if updated.Location != "Lima" {
		t.Fatalf("expected location untouched, got %s", updated.Location)
	}
}

func TestService_Delete_MissingPet(t *testing.T) {
	svc := NewService(newTestRepo())

	if err := svc.Delete(context.Background(), "nope"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
