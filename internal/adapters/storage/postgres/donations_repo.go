package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/donations"
)

type DonationRepo struct {
	db *sql.DB
}

func NewDonationRepo(db *sql.DB) *DonationRepo {
	return &DonationRepo{db: db}
}

func (r *DonationRepo) Create(ctx context.Context, d donations.Donation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donations (
			id, campaign_id, donated_by, pet_name, amount, created_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		d.ID,
		d.CampaignID,
		d.DonatedBy,
		d.PetName,
		d.Amount,
		d.CreatedAt,
	)
	return err
}

func (r *DonationRepo) ListByDonor(ctx context.Context, email string) ([]donations.Donation, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, donated_by, pet_name, amount, created_at
		FROM donations
		WHERE donated_by = $1
		ORDER BY created_at DESC
	`, email)
	if err != nil {
		return nil, err
	}
	return scanDonations(rows)
}

func (r *DonationRepo) ListByCampaign(ctx context.Context, campaignID string) ([]donations.Donation, error) {
	campaignID = strings.TrimSpace(campaignID)
	if campaignID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, campaign_id, donated_by, pet_name, amount, created_at
		FROM donations
		WHERE campaign_id = $1
		ORDER BY created_at DESC
	`, campaignID)
	if err != nil {
		return nil, err
	}
	return scanDonations(rows)
}

func scanDonations(rows *sql.Rows) ([]donations.Donation, error) {
	defer rows.Close()

	out := make([]donations.Donation, 0)
	for rows.Next() {
		var d donations.Donation
		if err := rows.Scan(
			&d.ID,
			&d.CampaignID,
			&d.DonatedBy,
			&d.PetName,
			&d.Amount,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
