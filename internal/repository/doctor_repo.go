package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"remote-pet-diagnosis/internal/domain"
)

// DoctorRepository define el contrato de persistencia para doctores.
type DoctorRepository interface {
	Create(ctx context.Context, doctor domain.Doctor) error
	GetByID(ctx context.Context, id string) (domain.Doctor, error)
	GetByEmail(ctx context.Context, email string) (domain.Doctor, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// PgDoctorRepository implementa DoctorRepository usando pgxpool.
type PgDoctorRepository struct {
	pool *pgxpool.Pool
}

func NewPgDoctorRepository(pool *pgxpool.Pool) *PgDoctorRepository {
	return &PgDoctorRepository{pool: pool}
}

func (r *PgDoctorRepository) Create(ctx context.Context, doctor domain.Doctor) error {
	const query = `
		INSERT INTO doctors (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Email,
		doctor.PasswordHash,
		doctor.CreatedAt,
	)
	return err
}

func (r *PgDoctorRepository) GetByID(ctx context.Context, id string) (domain.Doctor, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM doctors
		WHERE id = $1
	`
	var d domain.Doctor
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.Name,
		&d.Email,
		&d.PasswordHash,
		&d.CreatedAt,
	)
	return d, err
}

func (r *PgDoctorRepository) GetByEmail(ctx context.Context, email string) (domain.Doctor, error) {
	const query = `
		SELECT id, name, email, password_hash, created_at
		FROM doctors
		WHERE email = $1
	`
	var d domain.Doctor
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&d.ID,
		&d.Name,
		&d.Email,
		&d.PasswordHash,
		&d.CreatedAt,
	)
	return d, err
}

func (r *PgDoctorRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	const query = `
		SELECT EXISTS (SELECT 1 FROM doctors WHERE email = $1)
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, email).Scan(&exists)
	return exists, err
}
