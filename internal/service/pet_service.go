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

// PetService coordina reglas de negocio para mascotas.
type PetService struct {
	logger *zap.Logger
	pets   repository.PetRepository
}

func NewPetService(logger *zap.Logger, pets repository.PetRepository) *PetService {
	return &PetService{
		logger: logger,
		pets:   pets,
	}
}

var (
	ErrInvalidPet  = errors.New("invalid pet input")
	ErrPetExists   = errors.New("pet name already used by this owner")
	ErrPetNotFound = errors.New("pet not found")
	ErrNotPetOwner = errors.New("pet belongs to another owner")
)

// AddPet crea una mascota para el owner. Dos llamadas concurrentes con el
// mismo nombre pueden pasar ambas el chequeo de duplicado; la serialización
// final queda en la base.
func (s *PetService) AddPet(ctx context.Context, ownerID, name, species string) (domain.Pet, error) {
	name = strings.TrimSpace(name)
	species = strings.TrimSpace(species)
	if strings.TrimSpace(ownerID) == "" || name == "" || species == "" {
		return domain.Pet{}, ErrInvalidPet
	}

	exists, err := s.pets.ExistsByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return domain.Pet{}, err
	}
	if exists {
		return domain.Pet{}, ErrPetExists
	}

	pet := domain.Pet{
		ID:        uuid.NewString(),
		Name:      name,
		Species:   species,
		OwnerID:   ownerID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.pets.Create(ctx, pet); err != nil {
		return domain.Pet{}, err
	}
	return pet, nil
}

// DeletePet elimina una mascota solo si pertenece al solicitante.
func (s *PetService) DeletePet(ctx context.Context, requesterID, petID string) error {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrPetNotFound
		}
		return err
	}
	if pet.OwnerID != requesterID {
		return ErrNotPetOwner
	}
	return s.pets.DeleteByID(ctx, petID)
}

// ListByOwner devuelve las mascotas del owner.
func (s *PetService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Pet, error) {
	return s.pets.ListByOwner(ctx, ownerID)
}
