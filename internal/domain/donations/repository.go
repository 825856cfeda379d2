package donations

import "context"

type Repository interface {
	Create(ctx context.Context, d Donation) error
	ListByDonor(ctx context.Context, email string) ([]Donation, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]Donation, error)
}
