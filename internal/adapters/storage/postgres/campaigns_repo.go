package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption/internal/domain/campaigns"
)

type CampaignRepo struct {
	db *sql.DB
}

func NewCampaignRepo(db *sql.DB) *CampaignRepo {
	return &CampaignRepo{db: db}
}

const campaignColumns = `
	id, owner, pet_name, image,
	max_donation, donated_amount, last_date,
	short_description, long_description,
	is_paused, created_at, updated_at
`

func (r *CampaignRepo) Create(ctx context.Context, c campaigns.DonationCampaign) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO donation_campaigns (
			id, owner, pet_name, image,
			max_donation, donated_amount, last_date,
			short_description, long_description,
			is_paused, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		c.ID,
		c.Owner,
		c.PetName,
		c.Image,
		c.MaxDonation,
		c.DonatedAmount,
		c.LastDate,
		c.ShortDescription,
		c.LongDescription,
		c.IsPaused,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CampaignRepo) GetByID(ctx context.Context, id string) (campaigns.DonationCampaign, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return campaigns.DonationCampaign{}, campaigns.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM donation_campaigns
		WHERE id = $1
	`, id)
	return scanCampaignRow(row)
}

func (r *CampaignRepo) List(ctx context.Context, offset, limit int) ([]campaigns.DonationCampaign, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM donation_campaigns
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, err
	}
	return scanCampaigns(rows)
}

func (r *CampaignRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM donation_campaigns
	`).Scan(&n)
	return n, err
}

func (r *CampaignRepo) ListByOwner(ctx context.Context, owner string) ([]campaigns.DonationCampaign, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+campaignColumns+`
		FROM donation_campaigns
		WHERE owner = $1
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	return scanCampaigns(rows)
}

func (r *CampaignRepo) Update(ctx context.Context, c campaigns.DonationCampaign) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donation_campaigns
		SET
			pet_name = $2,
			image = $3,
			max_donation = $4,
			last_date = $5,
			short_description = $6,
			long_description = $7,
			updated_at = $8
		WHERE id = $1
	`,
		c.ID,
		c.PetName,
		c.Image,
		c.MaxDonation,
		c.LastDate,
		c.ShortDescription,
		c.LongDescription,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaigns.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) SetPaused(ctx context.Context, id string, paused bool, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE donation_campaigns
		SET is_paused = $2, updated_at = $3
		WHERE id = $1
	`, id, paused, updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaigns.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) IncrementDonated(ctx context.Context, id string, delta float64, updatedAt time.Time) (campaigns.DonationCampaign, error) {
	// el incremento se resuelve en la base: concurrente-seguro sin
	// read-modify-write del lado de la app
	row := r.db.QueryRowContext(ctx, `
		UPDATE donation_campaigns
		SET donated_amount = donated_amount + $2, updated_at = $3
		WHERE id = $1
		RETURNING `+campaignColumns+`
	`, id, delta, updatedAt)
	return scanCampaignRow(row)
}

func scanCampaignRow(row *sql.Row) (campaigns.DonationCampaign, error) {
	var c campaigns.DonationCampaign
	if err := row.Scan(
		&c.ID,
		&c.Owner,
		&c.PetName,
		&c.Image,
		&c.MaxDonation,
		&c.DonatedAmount,
		&c.LastDate,
		&c.ShortDescription,
		&c.LongDescription,
		&c.IsPaused,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return campaigns.DonationCampaign{}, campaigns.ErrNotFound
		}
		return campaigns.DonationCampaign{}, err
	}
	return c, nil
}

func scanCampaigns(rows *sql.Rows) ([]campaigns.DonationCampaign, error) {
	defer rows.Close()

	out := make([]campaigns.DonationCampaign, 0)
	for rows.Next() {
		var c campaigns.DonationCampaign
		if err := rows.Scan(
			&c.ID,
			&c.Owner,
			&c.PetName,
			&c.Image,
			&c.MaxDonation,
			&c.DonatedAmount,
			&c.LastDate,
			&c.ShortDescription,
			&c.LongDescription,
			&c.IsPaused,
			&c.CreatedAt,
			&c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
