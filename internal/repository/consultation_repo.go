package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remote-pet-diagnosis/internal/domain"
)

// ConsultationRepository define el contrato de persistencia para consultas.
// Los registros son append-mostly: no hay update ni reasignación.
type ConsultationRepository interface {
	Create(ctx context.Context, consultation domain.Consultation) error
	ListByDoctor(ctx context.Context, doctorID string) ([]domain.Consultation, error)
	ListByPetIDs(ctx context.Context, petIDs []string) ([]domain.Consultation, error)
}

// PgConsultationRepository implementa ConsultationRepository usando pgxpool.
type PgConsultationRepository struct {
	pool *pgxpool.Pool
}

func NewPgConsultationRepository(pool *pgxpool.Pool) *PgConsultationRepository {
	return &PgConsultationRepository{pool: pool}
}

func (r *PgConsultationRepository) Create(ctx context.Context, consultation domain.Consultation) error {
	const query = `
		INSERT INTO consultations (id, date, pet_id, doctor_id, report, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.pool.Exec(ctx, query,
		consultation.ID,
		consultation.Date,
		consultation.PetID,
		consultation.DoctorID,
		consultation.Report,
		consultation.CreatedAt,
	)
	return err
}

func (r *PgConsultationRepository) ListByDoctor(ctx context.Context, doctorID string) ([]domain.Consultation, error) {
	const query = `
		SELECT id, date, pet_id, doctor_id, report, created_at
		FROM consultations
		WHERE doctor_id = $1
		ORDER BY date DESC
	`
	rows, err := r.pool.Query(ctx, query, doctorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConsultations(rows)
}

func (r *PgConsultationRepository) ListByPetIDs(ctx context.Context, petIDs []string) ([]domain.Consultation, error) {
	if len(petIDs) == 0 {
		return nil, nil
	}
	const query = `
		SELECT id, date, pet_id, doctor_id, report, created_at
		FROM consultations
		WHERE pet_id = ANY($1)
		ORDER BY date DESC
	`
	rows, err := r.pool.Query(ctx, query, petIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanConsultations(rows)
}

func scanConsultations(rows pgx.Rows) ([]domain.Consultation, error) {
	var consultations []domain.Consultation
	for rows.Next() {
		var c domain.Consultation
		if err := rows.Scan(&c.ID, &c.Date, &c.PetID, &c.DoctorID, &c.Report, &c.CreatedAt); err != nil {
			return nil, err
		}
		consultations = append(consultations, c)
	}
	return consultations, rows.Err()
}
