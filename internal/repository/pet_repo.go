package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remote-pet-diagnosis/internal/domain"
)

// PetRepository define el contrato de persistencia para mascotas.
type PetRepository interface {
	Create(ctx context.Context, pet domain.Pet) error
	GetByID(ctx context.Context, id string) (domain.Pet, error)
	DeleteByID(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error)
	ListByIDs(ctx context.Context, ids []string) ([]domain.Pet, error)
	ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error)
}

// PgPetRepository implementa PetRepository usando pgxpool.
type PgPetRepository struct {
	pool *pgxpool.Pool
}

func NewPgPetRepository(pool *pgxpool.Pool) *PgPetRepository {
	return &PgPetRepository{pool: pool}
}

func (r *PgPetRepository) Create(ctx context.Context, pet domain.Pet) error {
	const query = `
		INSERT INTO pets (id, name, species, owner_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		pet.ID,
		pet.Name,
		pet.Species,
		pet.OwnerID,
		pet.CreatedAt,
	)
	return err
}

func (r *PgPetRepository) GetByID(ctx context.Context, id string) (domain.Pet, error) {
	const query = `
		SELECT id, name, species, owner_id, created_at
		FROM pets
		WHERE id = $1
	`
	var p domain.Pet
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Species,
		&p.OwnerID,
		&p.CreatedAt,
	)
	return p, err
}

func (r *PgPetRepository) DeleteByID(ctx context.Context, id string) error {
	const query = `
		DELETE FROM pets WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *PgPetRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	const query = `
		SELECT id, name, species, owner_id, created_at
		FROM pets
		WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

func (r *PgPetRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Pet, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, name, species, owner_id, created_at
		FROM pets
		WHERE id = ANY($1)
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPets(rows)
}

func (r *PgPetRepository) ExistsByOwnerAndName(ctx context.Context, ownerID, name string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM pets WHERE owner_id = $1 AND name = $2)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, ownerID, name).Scan(&exists)
	return exists, err
}

func scanPets(rows pgx.Rows) ([]domain.Pet, error) {
	var pets []domain.Pet
	for rows.Next() {
		var p domain.Pet
		if err := rows.Scan(&p.ID, &p.Name, &p.Species, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		pets = append(pets, p)
	}
	return pets, rows.Err()
}
