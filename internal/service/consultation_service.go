package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/repository"
)

// ConsultationService registra sesiones de consulta.
type ConsultationService struct {
	logger        *zap.Logger
	pets          repository.PetRepository
	consultations repository.ConsultationRepository
}

func NewConsultationService(logger *zap.Logger, pets repository.PetRepository, consultations repository.ConsultationRepository) *ConsultationService {
	return &ConsultationService{
		logger:        logger,
		pets:          pets,
		consultations: consultations,
	}
}

var ErrInvalidConsultation = errors.New("invalid consultation input")

// FileReport crea el registro de una consulta entre el doctor autenticado
// y una mascota existente. El vínculo queda fijo al crearse.
func (s *ConsultationService) FileReport(ctx context.Context, doctorID, petID string, date time.Time, report string) (domain.Consultation, error) {
	if strings.TrimSpace(doctorID) == "" || strings.TrimSpace(petID) == "" {
		return domain.Consultation{}, ErrInvalidConsultation
	}
	if _, err := s.pets.GetByID(ctx, petID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Consultation{}, ErrPetNotFound
		}
		return domain.Consultation{}, err
	}

	now := time.Now().UTC()
	if date.IsZero() {
		date = now
	}
	consultation := domain.Consultation{
		ID:        uuid.NewString(),
		Date:      date,
		PetID:     petID,
		DoctorID:  doctorID,
		Report:    strings.TrimSpace(report),
		CreatedAt: now,
	}
	if err := s.consultations.Create(ctx, consultation); err != nil {
		return domain.Consultation{}, err
	}
	return consultation, nil
}
