package pets

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
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name             string
	Age              int
	Category         string
	Location         string
	Image            string
	ShortDescription string
	LongDescription  string
}

func (s *Service) Create(ctx context.Context, owner string, in CreateInput) (Pet, error) {
	owner = strings.ToLower(strings.TrimSpace(owner))
	if owner == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:               uuid.NewString(),
		Owner:            owner,
		Name:             strings.TrimSpace(in.Name),
		Age:              in.Age,
		Category:         strings.TrimSpace(in.Category),
		Location:         strings.TrimSpace(in.Location),
		Image:            strings.TrimSpace(in.Image),
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		LongDescription:  strings.TrimSpace(in.LongDescription),
		Adopted:          false,
		Status:           StatusAvailable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAvailable(ctx context.Context) ([]Pet, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) ListByOwner(ctx context.Context, owner string) ([]Pet, error) {
	owner = strings.ToLower(strings.TrimSpace(owner))
	if owner == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, owner)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name             *string
	Age              *int
	Category         *string
	Location         *string
	Image            *string
	ShortDescription *string
	LongDescription  *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Pet, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Age != nil {
		if *in.Age < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = *in.Age
	}
	if in.Category != nil {
		p.Category = strings.TrimSpace(*in.Category)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}
	if in.ShortDescription != nil {
		p.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.LongDescription != nil {
		p.LongDescription = strings.TrimSpace(*in.LongDescription)
	}

	p.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// MarkAdopted marca adopted=true exactamente una vez.
// Mascota ausente o ya adoptada => ErrNotFound (contrato del PATCH /pets/adopt).
func (s *Service) MarkAdopted(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.MarkAdopted(ctx, id)
}

// Delete borra sin cascada: los adoption requests que referencien
// la mascota quedan colgando (contrato heredado del modelo de datos).
func (s *Service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

// OwnerOf expone el owner de una mascota.
// Se usa para checks de ownership sin ciclos de imports entre módulos.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.Owner, nil
}
