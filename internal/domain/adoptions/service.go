package adoptions

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrBadState     = errors.New("invalid state")
)

// PetDirectory es lo mínimo que adoptions necesita saber de pets
// (interface chica para no importar el módulo entero).
type PetDirectory interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

type Service struct {
	repo Repository
	pets PetDirectory
	now  func() time.Time
}

func NewService(repo Repository, pets PetDirectory) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	PetID          string
	PetName        string
	RequesterName  string
	RequesterEmail string
	Phone          string
	Address        string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (AdoptionRequest, error) {
	petID := strings.TrimSpace(in.PetID)
	requester := strings.ToLower(strings.TrimSpace(in.RequesterEmail))

	if petID == "" || requester == "" {
		return AdoptionRequest{}, ErrInvalidInput
	}

	// El PetID tiene que referenciar una mascota existente al crear;
	// después de eso no hay integridad referencial.
	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return AdoptionRequest{}, ErrNotFound
	}

	// El dueño no puede solicitar adoptar su propia mascota.
	if owner == requester {
		return AdoptionRequest{}, ErrInvalidInput
	}

	now := s.now()
	req := AdoptionRequest{
		ID:             uuid.NewString(),
		PetID:          petID,
		Owner:          owner,
		PetName:        strings.TrimSpace(in.PetName),
		RequesterName:  strings.TrimSpace(in.RequesterName),
		RequesterEmail: requester,
		Phone:          strings.TrimSpace(in.Phone),
		Address:        strings.TrimSpace(in.Address),
		Status:         StatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return AdoptionRequest{}, err
	}
	return req, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (AdoptionRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return AdoptionRequest{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, owner string) ([]AdoptionRequest, error) {
	owner = strings.ToLower(strings.TrimSpace(owner))
	if owner == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, owner)
}

// Resolve acepta o rechaza una solicitud pendiente.
// accepted dispara el workflow de dos escrituras (mascota + request) que el
// repo ejecuta como unidad atómica; rejected solo toca el request.
func (s *Service) Resolve(ctx context.Context, requestID string, newStatus Status) (AdoptionRequest, error) {
	requestID = strings.TrimSpace(requestID)
	if requestID == "" {
		return AdoptionRequest{}, ErrInvalidInput
	}
	if newStatus != StatusAccepted && newStatus != StatusRejected {
		return AdoptionRequest{}, ErrInvalidInput
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return AdoptionRequest{}, ErrNotFound
	}
	if req.Status != StatusPending {
		return AdoptionRequest{}, ErrBadState
	}

	now := s.now()

	if newStatus == StatusRejected {
		if err := s.repo.UpdateStatus(ctx, requestID, StatusRejected, now); err != nil {
			return AdoptionRequest{}, err
		}
		req.Status = StatusRejected
		req.UpdatedAt = now
		return req, nil
	}

	return s.repo.Accept(ctx, requestID, now)
}
