package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/donations"
)

type DonationRepo struct {
	mu    sync.RWMutex
	items []donations.Donation
}

func NewDonationRepo() *DonationRepo {
	return &DonationRepo{}
}

func (r *DonationRepo) Create(ctx context.Context, d donations.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(d.ID) == "" {
		return errors.New("donation id required")
	}
	r.items = append(r.items, d)
	return nil
}

func (r *DonationRepo) ListByDonor(ctx context.Context, email string) ([]donations.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]donations.Donation, 0)
	for _, d := range r.items {
		if d.DonatedBy == email {
			out = append(out, d)
		}
	}
	sortDonationsNewestFirst(out)
	return out, nil
}

func (r *DonationRepo) ListByCampaign(ctx context.Context, campaignID string) ([]donations.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]donations.Donation, 0)
	for _, d := range r.items {
		if d.CampaignID == campaignID {
			out = append(out, d)
		}
	}
	sortDonationsNewestFirst(out)
	return out, nil
}

func sortDonationsNewestFirst(items []donations.Donation) {
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
