package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/repository"
)

// DashboardService arma las proyecciones de lectura por identidad:
// el owner ve sus mascotas y consultas, el doctor ve las consultas que
// atendió y las mascotas involucradas.
type DashboardService struct {
	logger        *zap.Logger
	owners        repository.OwnerRepository
	doctors       repository.DoctorRepository
	pets          repository.PetRepository
	consultations repository.ConsultationRepository
}

func NewDashboardService(
	logger *zap.Logger,
	owners repository.OwnerRepository,
	doctors repository.DoctorRepository,
	pets repository.PetRepository,
	consultations repository.ConsultationRepository,
) *DashboardService {
	return &DashboardService{
		logger:        logger,
		owners:        owners,
		doctors:       doctors,
		pets:          pets,
		consultations: consultations,
	}
}

var (
	ErrOwnerNotFound  = errors.New("owner not found")
	ErrDoctorNotFound = errors.New("doctor not found")
)

type OwnerDashboard struct {
	Owner         domain.Principal      `json:"owner"`
	Pets          []domain.Pet          `json:"pets"`
	Consultations []domain.Consultation `json:"consultations"`
}

type DoctorDashboard struct {
	Doctor        domain.Principal      `json:"doctor"`
	Patients      []domain.Pet          `json:"patients"`
	Consultations []domain.Consultation `json:"consultations"`
}

// OwnerDashboard devuelve el resumen del owner con sus mascotas y las
// consultas de esas mascotas, más reciente primero.
func (s *DashboardService) OwnerDashboard(ctx context.Context, ownerID string) (OwnerDashboard, error) {
	owner, err := s.owners.GetByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return OwnerDashboard{}, ErrOwnerNotFound
		}
		return OwnerDashboard{}, err
	}

	pets, err := s.pets.ListByOwner(ctx, ownerID)
	if err != nil {
		return OwnerDashboard{}, err
	}

	petIDs := make([]string, 0, len(pets))
	for _, p := range pets {
		petIDs = append(petIDs, p.ID)
	}
	consultations, err := s.consultations.ListByPetIDs(ctx, petIDs)
	if err != nil {
		return OwnerDashboard{}, err
	}

	return OwnerDashboard{
		Owner:         owner.AsPrincipal(),
		Pets:          pets,
		Consultations: consultations,
	}, nil
}

// DoctorDashboard devuelve el resumen del doctor con sus consultas y las
// mascotas atendidas en ellas.
func (s *DashboardService) DoctorDashboard(ctx context.Context, doctorID string) (DoctorDashboard, error) {
	doctor, err := s.doctors.GetByID(ctx, doctorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return DoctorDashboard{}, ErrDoctorNotFound
		}
		return DoctorDashboard{}, err
	}

	consultations, err := s.consultations.ListByDoctor(ctx, doctorID)
	if err != nil {
		return DoctorDashboard{}, err
	}

	seen := make(map[string]bool, len(consultations))
	petIDs := make([]string, 0, len(consultations))
	for _, c := range consultations {
		if !seen[c.PetID] {
			seen[c.PetID] = true
			petIDs = append(petIDs, c.PetID)
		}
	}
	patients, err := s.pets.ListByIDs(ctx, petIDs)
	if err != nil {
		return DoctorDashboard{}, err
	}

	return DoctorDashboard{
		Doctor:        doctor.AsPrincipal(),
		Patients:      patients,
		Consultations: consultations,
	}, nil
}
