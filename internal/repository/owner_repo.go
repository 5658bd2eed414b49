package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"remote-pet-diagnosis/internal/domain"
)

// OwnerRepository define el contrato de persistencia para owners.
type OwnerRepository interface {
	Create(ctx context.Context, owner domain.Owner) error
	GetByID(ctx context.Context, id string) (domain.Owner, error)
	GetByEmail(ctx context.Context, email string) (domain.Owner, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PgOwnerRepository implementa OwnerRepository usando pgxpool.
type PgOwnerRepository struct {
	pool *pgxpool.Pool
}

func NewPgOwnerRepository(pool *pgxpool.Pool) *PgOwnerRepository {
	return &PgOwnerRepository{pool: pool}
}

func (r *PgOwnerRepository) Create(ctx context.Context, owner domain.Owner) error {
	const query = `
		INSERT INTO owners (id, name, email, password_hash, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.pool.Exec(ctx, query,
		owner.ID,
		owner.Name,
		owner.Email,
		owner.PasswordHash,
		owner.Phone,
		owner.Address,
		owner.CreatedAt,
	)
	return err
}

func (r *PgOwnerRepository) GetByID(ctx context.Context, id string) (domain.Owner, error) {
	const query = `
		SELECT id, name, email, password_hash, phone, address, created_at
		FROM owners
		WHERE id = $1
	`
	var o domain.Owner
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID,
		&o.Name,
		&o.Email,
		&o.PasswordHash,
		&o.Phone,
		&o.Address,
		&o.CreatedAt,
	)
	return o, err
}

func (r *PgOwnerRepository) GetByEmail(ctx context.Context, email string) (domain.Owner, error) {
	const query = `
		SELECT id, name, email, password_hash, phone, address, created_at
		FROM owners
		WHERE email = $1
	`
	var o domain.Owner
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&o.ID,
		&o.Name,
		&o.Email,
		&o.PasswordHash,
		&o.Phone,
		&o.Address,
		&o.CreatedAt,
	)
	return o, err
}

func (r *PgOwnerRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM owners WHERE email = $1)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}
