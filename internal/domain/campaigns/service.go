package campaigns

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

const (
	DefaultPageLimit = 9
	maxPageLimit     = 100
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
	PetName          string
	Image            string
	MaxDonation      float64
	LastDate         time.Time
	ShortDescription string
	LongDescription  string
}

func (s *Service) Create(ctx context.Context, owner string, in CreateInput) (DonationCampaign, error) {
	owner = strings.ToLower(strings.TrimSpace(owner))
	if owner == "" {
		return DonationCampaign{}, ErrInvalidInput
	}

	// Campos obligatorios del formulario de campaña.
	if strings.TrimSpace(in.Image) == "" ||
		strings.TrimSpace(in.ShortDescription) == "" ||
		strings.TrimSpace(in.LongDescription) == "" ||
		in.LastDate.IsZero() {
		return DonationCampaign{}, ErrInvalidInput
	}
	if !isFinitePositive(in.MaxDonation) {
		return DonationCampaign{}, ErrInvalidInput
	}

	now := s.now()
	c := DonationCampaign{
		ID:               uuid.NewString(),
		Owner:            owner,
		PetName:          strings.TrimSpace(in.PetName),
		Image:            strings.TrimSpace(in.Image),
		MaxDonation:      in.MaxDonation,
		DonatedAmount:    0,
		LastDate:         in.LastDate,
		ShortDescription: strings.TrimSpace(in.ShortDescription),
		LongDescription:  strings.TrimSpace(in.LongDescription),
		IsPaused:         false,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return DonationCampaign{}, err
	}
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (DonationCampaign, error) {
	if strings.TrimSpace(id) == "" {
		return DonationCampaign{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// List pagina 1-based: skip = (page-1)*limit.
// hasMore = skip + devueltas < total.
func (s *Service) List(ctx context.Context, page, limit int) ([]DonationCampaign, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	skip := (page - 1) * limit

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	items, err := s.repo.List(ctx, skip, limit)
	if err != nil {
		return nil, Pagination{}, err
	}

	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	p := Pagination{
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalCount:  total,
		HasMore:     skip+len(items) < total,
		Limit:       limit,
	}
	return items, p, nil
}

func (s *Service) ListByOwner(ctx context.Context, owner string) ([]DonationCampaign, error) {
	owner = strings.ToLower(strings.TrimSpace(owner))
	if owner == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, owner)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	PetName          *string
	Image            *string
	MaxDonation      *float64
	LastDate         *time.Time
	ShortDescription *string
	LongDescription  *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (DonationCampaign, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return DonationCampaign{}, err
	}

	if in.PetName != nil {
		c.PetName = strings.TrimSpace(*in.PetName)
	}
	if in.Image != nil {
		img := strings.TrimSpace(*in.Image)
		if img == "" {
			return DonationCampaign{}, ErrInvalidInput
		}
		c.Image = img
	}
	if in.MaxDonation != nil {
		if !isFinitePositive(*in.MaxDonation) {
			return DonationCampaign{}, ErrInvalidInput
		}
		c.MaxDonation = *in.MaxDonation
	}
	if in.LastDate != nil {
		if in.LastDate.IsZero() {
			return DonationCampaign{}, ErrInvalidInput
		}
		c.LastDate = *in.LastDate
	}
	if in.ShortDescription != nil {
		c.ShortDescription = strings.TrimSpace(*in.ShortDescription)
	}
	if in.LongDescription != nil {
		c.LongDescription = strings.TrimSpace(*in.LongDescription)
	}

	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return DonationCampaign{}, err
	}
	return c, nil
}

func (s *Service) TogglePause(ctx context.Context, id string) (DonationCampaign, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return DonationCampaign{}, err
	}

	now := s.now()
	if err := s.repo.SetPaused(ctx, id, !c.IsPaused, now); err != nil {
		return DonationCampaign{}, err
	}

	c.IsPaused = !c.IsPaused
	c.UpdatedAt = now
	return c, nil
}

// Accrue suma amount al acumulado de la campaña (donación entrante).
// Devuelve el snapshot post-incremento.
func (s *Service) Accrue(ctx context.Context, id string, amount float64) (DonationCampaign, error) {
	if strings.TrimSpace(id) == "" || !isFinitePositive(amount) {
		return DonationCampaign{}, ErrInvalidInput
	}
	return s.repo.IncrementDonated(ctx, id, amount, s.now())
}

// Revert es el mismo incremento con signo negado (refund/corrección).
func (s *Service) Revert(ctx context.Context, id string, amount float64) (DonationCampaign, error) {
	if strings.TrimSpace(id) == "" || !isFinitePositive(amount) {
		return DonationCampaign{}, ErrInvalidInput
	}
	return s.repo.IncrementDonated(ctx, id, -amount, s.now())
}

// OwnerOf expone el owner de una campaña para checks de ownership.
func (s *Service) OwnerOf(ctx context.Context, id string) (string, error) {
	c, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return c.Owner, nil
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}
