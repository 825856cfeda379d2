package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-adoption/internal/domain/campaigns"
)

type CampaignRepo struct {
	mu   sync.RWMutex
	byID map[string]campaigns.DonationCampaign
}

func NewCampaignRepo() *CampaignRepo {
	return &CampaignRepo{
		byID: make(map[string]campaigns.DonationCampaign),
	}
}

func (r *CampaignRepo) Create(ctx context.Context, c campaigns.DonationCampaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(c.ID) == "" {
		return errors.New("campaign id required")
	}
	if _, exists := r.byID[c.ID]; exists {
		return errors.New("campaign already exists")
	}
	r.byID[c.ID] = c
	return nil
}

func (r *CampaignRepo) GetByID(ctx context.Context, id string) (campaigns.DonationCampaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byID[id]
	if !ok {
		return campaigns.DonationCampaign{}, campaigns.ErrNotFound
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context, offset, limit int) ([]campaigns.DonationCampaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedLocked()
	if offset >= len(all) {
		return []campaigns.DonationCampaign{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]campaigns.DonationCampaign, end-offset)
	copy(out, all[offset:end])
	return out, nil
}

func (r *CampaignRepo) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID), nil
}

func (r *CampaignRepo) ListByOwner(ctx context.Context, owner string) ([]campaigns.DonationCampaign, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]campaigns.DonationCampaign, 0)
	for _, c := range r.byID {
		if c.Owner == owner {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *CampaignRepo) Update(ctx context.Context, c campaigns.DonationCampaign) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, exists := r.byID[c.ID]
	if !exists {
		return campaigns.ErrNotFound
	}

	// Solo los campos editables: DonatedAmount se muta únicamente vía
	// IncrementDonated e IsPaused vía SetPaused. Pisarlos con el snapshot
	// del caller perdería escrituras concurrentes.
	cur.PetName = c.PetName
	cur.Image = c.Image
	cur.MaxDonation = c.MaxDonation
	cur.LastDate = c.LastDate
	cur.ShortDescription = c.ShortDescription
	cur.LongDescription = c.LongDescription
	cur.UpdatedAt = c.UpdatedAt

	r.byID[c.ID] = cur
	return nil
}

func (r *CampaignRepo) SetPaused(ctx context.Context, id string, paused bool, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return campaigns.ErrNotFound
	}
	c.IsPaused = paused
	c.UpdatedAt = updatedAt
	r.byID[id] = c
	return nil
}

func (r *CampaignRepo) IncrementDonated(ctx context.Context, id string, delta float64, updatedAt time.Time) (campaigns.DonationCampaign, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return campaigns.DonationCampaign{}, campaigns.ErrNotFound
	}
	c.DonatedAmount += delta
	c.UpdatedAt = updatedAt
	r.byID[id] = c
	return c, nil
}

// sortedLocked asume r.mu tomado (lectura).
func (r *CampaignRepo) sortedLocked() []campaigns.DonationCampaign {
	all := make([]campaigns.DonationCampaign, 0, len(r.byID))
	for _, c := range r.byID {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})
	return all
}
