package campaigns

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, c DonationCampaign) error
	GetByID(ctx context.Context, id string) (DonationCampaign, error)

	// List pagina más nuevas primero; offset/limit ya vienen calculados.
	List(ctx context.Context, offset, limit int) ([]DonationCampaign, error)
	Count(ctx context.Context) (int, error)

	ListByOwner(ctx context.Context, owner string) ([]DonationCampaign, error)

	Update(ctx context.Context, c DonationCampaign) error

	SetPaused(ctx context.Context, id string, paused bool, updatedAt time.Time) error

	// IncrementDonated suma delta a donatedAmount de forma ATÓMICA
	// (nada de find + update con valor calculado: se pierden updates
	// bajo donaciones concurrentes) y devuelve el snapshot resultante.
	IncrementDonated(ctx context.Context, id string, delta float64, updatedAt time.Time) (DonationCampaign, error)
}
