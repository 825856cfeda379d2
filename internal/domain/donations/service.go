package donations

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

// CampaignDirectory es lo mínimo que donations necesita saber de
// campaigns (la referencia tiene que existir al registrar).
type CampaignDirectory interface {
	OwnerOf(ctx context.Context, campaignID string) (string, error)
}

type Service struct {
	repo      Repository
	campaigns CampaignDirectory
	now       func() time.Time
}

func NewService(repo Repository, campaigns CampaignDirectory) *Service {
	return &Service{
		repo:      repo,
		campaigns: campaigns,
		now:       time.Now,
	}
}

type CreateInput struct {
	CampaignID string
	DonatedBy  string
	PetName    string
	Amount     float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Donation, error) {
	campaignID := strings.TrimSpace(in.CampaignID)
	donor := strings.ToLower(strings.TrimSpace(in.DonatedBy))

	if campaignID == "" || donor == "" {
		return Donation{}, ErrInvalidInput
	}
	if math.IsNaN(in.Amount) || math.IsInf(in.Amount, 0) || in.Amount <= 0 {
		return Donation{}, ErrInvalidInput
	}

	if _, err := s.campaigns.OwnerOf(ctx, campaignID); err != nil {
		return Donation{}, ErrNotFound
	}

	d := Donation{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		DonatedBy:  donor,
		PetName:    strings.TrimSpace(in.PetName),
		Amount:     in.Amount,
		CreatedAt:  s.now(),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		return Donation{}, err
	}
	return d, nil
}

func (s *Service) ListByDonor(ctx context.Context, email string) ([]Donation, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByDonor(ctx, email)
}

func (s *Service) ListByCampaign(ctx context.Context, campaignID string) ([]Donation, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByCampaign(ctx, campaignID)
}
