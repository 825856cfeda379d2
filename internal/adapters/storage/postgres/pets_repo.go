package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/pets"
)

type PetRepo struct {
	db *sql.DB
}

func NewPetRepo(db *sql.DB) *PetRepo {
	return &PetRepo{db: db}
}

const petColumns = `
	id, owner, name, age, category, location, image,
	short_description, long_description,
	adopted, status, created_at, updated_at
`

func (r *PetRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, owner, name, age, category, location, image,
			short_description, long_description,
			adopted, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.Owner,
		p.Name,
		p.Age,
		p.Category,
		p.Location,
		p.Image,
		p.ShortDescription,
		p.LongDescription,
		p.Adopted,
		string(p.Status),
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1
	`, id)
	return scanPetRow(row)
}

func (r *PetRepo) ListAvailable(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE adopted = FALSE
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return scanPets(rows)
}

func (r *PetRepo) ListByOwner(ctx context.Context, owner string) ([]pets.Pet, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner = $1
		ORDER BY created_at DESC
	`, owner)
	if err != nil {
		return nil, err
	}
	return scanPets(rows)
}

func (r *PetRepo) Update(ctx context.Context, p pets.Pet) error {
	// adopted/status quedan fuera: solo los mutan los writes
	// condicionales de adopción, nunca un snapshot del caller.
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			age = $3,
			category = $4,
			location = $5,
			image = $6,
			short_description = $7,
			long_description = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Age,
		p.Category,
		p.Location,
		p.Image,
		p.ShortDescription,
		p.LongDescription,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetRepo) MarkAdopted(ctx context.Context, id string) error {
	// condicional: cero filas si no existe O ya estaba adoptada
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET adopted = TRUE, status = $2, updated_at = NOW()
		WHERE id = $1 AND adopted = FALSE
	`, id, string(pets.StatusAdopted))
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM pets WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPetRow(row *sql.Row) (pets.Pet, error) {
	var p pets.Pet
	var status string
	if err := row.Scan(
		&p.ID,
		&p.Owner,
		&p.Name,
		&p.Age,
		&p.Category,
		&p.Location,
		&p.Image,
		&p.ShortDescription,
		&p.LongDescription,
		&p.Adopted,
		&status,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	p.Status = pets.Status(status)
	return p, nil
}

func scanPets(rows *sql.Rows) ([]pets.Pet, error) {
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		var p pets.Pet
		var status string
		if err := rows.Scan(
			&p.ID,
			&p.Owner,
			&p.Name,
			&p.Age,
			&p.Category,
			&p.Location,
			&p.Image,
			&p.ShortDescription,
			&p.LongDescription,
			&p.Adopted,
			&status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		p.Status = pets.Status(status)
		out = append(out, p)
	}
	return out, rows.Err()
}
