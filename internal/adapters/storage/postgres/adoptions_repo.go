package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"pet-adoption/internal/domain/adoptions"
	"pet-adoption/internal/domain/pets"
)

type AdoptionRepo struct {
	db *sql.DB
}

func NewAdoptionRepo(db *sql.DB) *AdoptionRepo {
	return &AdoptionRepo{db: db}
}

const adoptionColumns = `
	id, pet_id, owner,
	pet_name, requester_name, requester_email, phone, address,
	status, created_at, updated_at
`

func (r *AdoptionRepo) Create(ctx context.Context, req adoptions.AdoptionRequest) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO adoption_requests (
			id, pet_id, owner,
			pet_name, requester_name, requester_email, phone, address,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		req.ID,
		req.PetID,
		req.Owner,
		req.PetName,
		req.RequesterName,
		req.RequesterEmail,
		req.Phone,
		req.Address,
		string(req.Status),
		req.CreatedAt,
		req.UpdatedAt,
	)
	return err
}

func (r *AdoptionRepo) GetByID(ctx context.Context, id string) (adoptions.AdoptionRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return adoptions.AdoptionRequest{}, adoptions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoption_requests
		WHERE id = $1
	`, id)
	return scanAdoptionRow(row)
}

func (r *AdoptionRepo) ListByOwner(ctx context.Context, owner string) ([]adoptions.AdoptionRequest, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoption_requests
		WHERE owner = $1
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]adoptions.AdoptionRequest, 0)
	for rows.Next() {
		var req adoptions.AdoptionRequest
		var status string
		if err := rows.Scan(
			&req.ID,
			&req.PetID,
			&req.Owner,
			&req.PetName,
			&req.RequesterName,
			&req.RequesterEmail,
			&req.Phone,
			&req.Address,
			&status,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		req.Status = adoptions.Status(status)
		out = append(out, req)
	}
	return out, rows.Err()
}

func (r *AdoptionRepo) UpdateStatus(ctx context.Context, id string, status adoptions.Status, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), updatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return adoptions.ErrNotFound
	}
	return nil
}

// Accept corre los dos writes en UNA transacción: la mascota pasa a
// adoptada (condicional a adopted=false) y el request a accepted.
// Cualquier fila en cero aborta con rollback.
func (r *AdoptionRepo) Accept(ctx context.Context, requestID string, updatedAt time.Time) (adoptions.AdoptionRequest, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return adoptions.AdoptionRequest{}, err
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx, `
		SELECT `+adoptionColumns+`
		FROM adoption_requests
		WHERE id = $1
		FOR UPDATE
	`, requestID)
	req, err := scanAdoptionRow(row)
	if err != nil {
		return adoptions.AdoptionRequest{}, err
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE pets
		SET adopted = TRUE, status = $2, updated_at = $3
		WHERE id = $1 AND adopted = FALSE
	`, req.PetID, string(pets.StatusUnavailable), updatedAt)
	if err != nil {
		return adoptions.AdoptionRequest{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// mascota ausente o ya adoptada por otro request
		return adoptions.AdoptionRequest{}, adoptions.ErrBadState
	}

	res, err = tx.ExecContext(ctx, `
		UPDATE adoption_requests
		SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4
	`, requestID, string(adoptions.StatusAccepted), updatedAt, string(adoptions.StatusPending))
	if err != nil {
		return adoptions.AdoptionRequest{}, err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// resuelto concurrentemente (p. ej. un reject que ganó la carrera)
		return adoptions.AdoptionRequest{}, adoptions.ErrBadState
	}

	if err := tx.Commit(); err != nil {
		return adoptions.AdoptionRequest{}, err
	}

	req.Status = adoptions.StatusAccepted
	req.UpdatedAt = updatedAt
	return req, nil
}

func scanAdoptionRow(row *sql.Row) (adoptions.AdoptionRequest, error) {
	var req adoptions.AdoptionRequest
	var status string
	if err := row.Scan(
		&req.ID,
		&req.PetID,
		&req.Owner,
		&req.PetName,
		&req.RequesterName,
		&req.RequesterEmail,
		&req.Phone,
		&req.Address,
		&status,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return adoptions.AdoptionRequest{}, adoptions.ErrNotFound
		}
		return adoptions.AdoptionRequest{}, err
	}
	req.Status = adoptions.Status(status)
	return req, nil
}
