package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/pets"
)

type PetRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() *PetRepo {
	return &PetRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *PetRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if !p.Adopted {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *PetRepo) ListByOwner(ctx context.Context, owner string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.Owner == owner {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[p.ID]
	if !exists {
		return pets.ErrNotFound
	}

	// Adopted/Status solo se mutan vía los writes condicionales de
	// adopción; un PUT del owner con snapshot viejo no puede revertirlos.
	cur.Name = p.Name
	cur.Age = p.Age
	cur.Category = p.Category
	cur.Location = p.Location
	cur.Image = p.Image
	cur.ShortDescription = p.ShortDescription
	cur.LongDescription = p.LongDescription
	cur.UpdatedAt = p.UpdatedAt

	r.byID[p.ID] = cur
	return nil
}

func (r *PetRepo) MarkAdopted(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markAdoptedLocked(id, pets.StatusAdopted)
}

func (r *PetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// markAdoptedLocked asume r.mu tomado. Condicional: solo si adopted=false.
func (r *PetRepo) markAdoptedLocked(id string, status pets.Status) error {
	p, ok := r.byID[id]
	if !ok || p.Adopted {
		return pets.ErrNotFound
	}
	p.Adopted = true
	p.Status = status
	r.byID[id] = p
	return nil
}

// adoptForRequest lo usa el workflow de aceptación: marca la mascota
// adoptada + unavailable, condicional a que siga sin adoptar.
func (r *PetRepo) adoptForRequest(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.markAdoptedLocked(id, pets.StatusUnavailable)
}

func sortNewestFirst(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
