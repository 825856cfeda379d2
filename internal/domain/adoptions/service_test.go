package adoptions

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
	byID map[string]AdoptionRequest

	// adoptedPets simula la colección de mascotas para el workflow.
	adoptedPets map[string]bool

	// failAccept inyecta una falla de infraestructura en el workflow.
	failAccept bool
}

func newTestRepo() *testRepo {
	return &testRepo{
		byID:        map[string]AdoptionRequest{},
		adoptedPets: map[string]bool{},
	}
}

func (r *testRepo) Create(ctx context.Context, req AdoptionRequest) error {
	if req.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[req.ID] = req
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (AdoptionRequest, error) {
	req, ok := r.byID[id]
	if !ok {
		return AdoptionRequest{}, ErrNotFound
	}
	return req, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, owner string) ([]AdoptionRequest, error) {
	out := make([]AdoptionRequest, 0)
	for _, req := range r.byID {
		if req.Owner == owner {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *testRepo) UpdateStatus(ctx context.Context, id string, status Status, updatedAt time.Time) error {
	req, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	r.byID[id] = req
	return nil
}

// Accept respeta el contrato atómico: con failAccept no muta NADA.
func (r *testRepo) Accept(ctx context.Context, requestID string, updatedAt time.Time) (AdoptionRequest, error) {
	if r.failAccept {
		return AdoptionRequest{}, errors.New("repo: store unavailable")
	}

	req, ok := r.byID[requestID]
	if !ok {
		return AdoptionRequest{}, ErrNotFound
	}
	if r.adoptedPets[req.PetID] {
		return AdoptionRequest{}, ErrBadState
	}

	r.adoptedPets[req.PetID] = true
	req.Status = StatusAccepted
	req.UpdatedAt = updatedAt
	r.byID[requestID] = req
	return req, nil
}

type testPets struct {
	owners map[string]string // petID -> owner
}

func (p *testPets) OwnerOf(ctx context.Context, petID string) (string, error) {
	owner, ok := p.owners[petID]
	if !ok {
		return "", errors.New("pet not found")
	}
	return owner, nil
}

func newService(repo *testRepo) (*Service, *testPets) {
	pets := &testPets{owners: map[string]string{"pet-1": "owner@x.com"}}
	svc := NewService(repo, pets)
	return svc, pets
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_SetsPendingAndOwnerFromPet(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	req, err := svc.Create(context.Background(), CreateInput{
		PetID:          "pet-1",
		RequesterEmail: "Adopter@X.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected pending, got %s", req.Status)
	}
	// El owner se resuelve desde la mascota, no desde el body.
	if req.Owner != "owner@x.com" {
		t.Fatalf("expected owner from pet, got %s", req.Owner)
	}
	if req.RequesterEmail != "adopter@x.com" {
		t.Fatalf("expected normalized requester email, got %s", req.RequesterEmail)
	}
}

func TestService_Create_RejectsOwnRequestAndMissingPet(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	// El dueño no puede solicitar su propia mascota.
	_, err := svc.Create(context.Background(), CreateInput{
		PetID:          "pet-1",
		RequesterEmail: "OWNER@x.com",
	})
	if err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	// PetID colgando al crear => NotFound.
	_, err = svc.Create(context.Background(), CreateInput{
		PetID:          "ghost",
		RequesterEmail: "adopter@x.com",
	})
	if err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Resolve_AcceptMarksPetAndRequest(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	req, err := svc.Create(context.Background(), CreateInput{
		PetID:          "pet-1",
		RequesterEmail: "adopter@x.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), req.ID, StatusAccepted)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Status != StatusAccepted {
		t.Fatalf("expected accepted, got %s", resolved.Status)
	}
	if !repo.adoptedPets["pet-1"] {
		t.Fatalf("expected pet marked adopted")
	}
}

func TestService_Resolve_AllOrNothingOnFailure(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	req, err := svc.Create(context.Background(), CreateInput{
		PetID:          "pet-1",
		RequesterEmail: "adopter@x.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	// Falla de infraestructura en el workflow => error, no éxito parcial.
	repo.failAccept = true
	if _, err := svc.Resolve(context.Background(), req.ID, StatusAccepted); err == nil {
		t.Fatalf("expected error from failed workflow")
	}

	// Re-consultar ambos lados: ninguno cambió.
	after, err := svc.GetByID(context.Background(), req.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if after.Status != StatusPending {
		t.Fatalf("expected request still pending, got %s", after.Status)
	}
	if repo.adoptedPets["pet-1"] {
		t.Fatalf("expected pet NOT adopted after failed workflow")
	}
}

func TestService_Resolve_RejectedSkipsPetWrite(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	req, err := svc.Create(context.Background(), CreateInput{
		PetID:          "pet-1",
		RequesterEmail: "adopter@x.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	resolved, err := svc.Resolve(context.Background(), req.ID, StatusRejected)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Status != StatusRejected {
		t.Fatalf("expected rejected, got %s", resolved.Status)
	}
	if repo.adoptedPets["pet-1"] {
		t.Fatalf("rejected request must not touch the pet")
	}
}

func TestService_Resolve_OnlyOncePerRequest(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	req, err := svc.Create(context.Background(), CreateInput{
		PetID:          "pet-1",
		RequesterEmail: "adopter@x.com",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if _, err := svc.Resolve(context.Background(), req.ID, StatusAccepted); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	// Re-resolver un request ya resuelto => bad state.
	if _, err := svc.Resolve(context.Background(), req.ID, StatusAccepted); err != ErrBadState {
		t.Fatalf("expected ErrBadState, got %v", err)
	}
}

func TestService_Resolve_ValidatesStatusAndID(t *testing.T) {
	repo := newTestRepo()
	svc, _ := newService(repo)

	if _, err := svc.Resolve(context.Background(), "nope", StatusAccepted); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Resolve(context.Background(), "id", Status("archived")); err != ErrInvalidInput {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
