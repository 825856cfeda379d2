package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

type AdoptionRepo struct {
	mu   sync.RWMutex
	byID map[string]adoptions.AdoptionRequest

	// pets participa en el workflow de aceptación (dos colecciones).
	pets *PetRepo
}

func NewAdoptionRepo(petRepo *PetRepo) *AdoptionRepo {
	return &AdoptionRepo{
		byID: make(map[string]adoptions.AdoptionRequest),
		pets: petRepo,
	}
}

func (r *AdoptionRepo) Create(ctx context.Context, req adoptions.AdoptionRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[req.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[req.ID] = req
	return nil
}

func (r *AdoptionRepo) GetByID(ctx context.Context, id string) (adoptions.AdoptionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return adoptions.AdoptionRequest{}, adoptions.ErrNotFound
	}
	return req, nil
}

func (r *AdoptionRepo) ListByOwner(ctx context.Context, owner string) ([]adoptions.AdoptionRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]adoptions.AdoptionRequest, 0)
	for _, req := range r.byID {
		if req.Owner == owner {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AdoptionRepo) UpdateStatus(ctx context.Context, id string, status adoptions.Status, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[id]
	if !ok {
		return adoptions.ErrNotFound
	}
	req.Status = status
	req.UpdatedAt = updatedAt
	r.byID[id] = req
	return nil
}

// Accept ejecuta el workflow de dos escrituras. Orden: primero la mascota
// (la única escritura que puede fallar: ya adoptada); solo si pasa, se
// muta el request. Nada borra requests, así que no hay falla posible
// entre medio: o quedan ambos, o ninguno.
func (r *AdoptionRepo) Accept(ctx context.Context, requestID string, updatedAt time.Time) (adoptions.AdoptionRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.byID[requestID]
	if !ok {
		return adoptions.AdoptionRequest{}, adoptions.ErrNotFound
	}
	// El check de pending del service corre fuera de este lock; se
	// revalida acá para que un reject concurrente no sea pisado.
	if req.Status != adoptions.StatusPending {
		return adoptions.AdoptionRequest{}, adoptions.ErrBadState
	}

	if err := r.pets.adoptForRequest(req.PetID); err != nil {
		if err == pets.ErrNotFound {
			return adoptions.AdoptionRequest{}, adoptions.ErrBadState
		}
		return adoptions.AdoptionRequest{}, err
	}

	req.Status = adoptions.StatusAccepted
	req.UpdatedAt = updatedAt
	r.byID[requestID] = req
	return req, nil
}
