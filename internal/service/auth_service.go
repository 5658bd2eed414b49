package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/repository"
)

// AuthService coordina registro y verificación de credenciales para
// las dos variantes de principal (owner y doctor).
type AuthService struct {
	logger  *zap.Logger
	owners  repository.OwnerRepository
	doctors repository.DoctorRepository
	limiter LoginRateLimiter
}

func NewAuthService(logger *zap.Logger, owners repository.OwnerRepository, doctors repository.DoctorRepository, limiter LoginRateLimiter) *AuthService {
	return &AuthService{
		logger:  logger,
		owners:  owners,
		doctors: doctors,
		limiter: limiter,
	}
}

var (
	// ErrInvalidCredentials cubre tanto "no existe el principal" como
	// "contraseña incorrecta"; la respuesta no distingue la causa.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrRateLimited        = errors.New("rate limited")
)

// Authenticate busca el principal del rol pedido por email y compara la
// contraseña contra el hash almacenado. Owner y doctor viven en namespaces
// disjuntos: el rol es entrada obligatoria, no se adivina.
func (s *AuthService) Authenticate(ctx context.Context, emailAddr, password string, role domain.Role) (domain.Principal, error) {
	emailAddr = normalizeEmail(emailAddr)
	password = strings.TrimSpace(password)
	if emailAddr == "" || password == "" {
		return domain.Principal{}, ErrInvalidCredentials
	}

	if s.limiter != nil && !s.limiter.Allow(emailAddr) {
		return domain.Principal{}, ErrRateLimited
	}

	var (
		principal domain.Principal
		hash      string
	)
	switch role {
	case domain.RoleOwner:
		owner, err := s.owners.GetByEmail(ctx, emailAddr)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Principal{}, ErrInvalidCredentials
			}
			return domain.Principal{}, err
		}
		principal, hash = owner.AsPrincipal(), owner.PasswordHash
	case domain.RoleDoctor:
		doctor, err := s.doctors.GetByEmail(ctx, emailAddr)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domain.Principal{}, ErrInvalidCredentials
			}
			return domain.Principal{}, err
		}
		principal, hash = doctor.AsPrincipal(), doctor.PasswordHash
	default:
		return domain.Principal{}, ErrInvalidCredentials
	}

	if hash == "" {
		return domain.Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return domain.Principal{}, ErrInvalidCredentials
	}
	return principal, nil
}

type RegisterOwnerInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

// RegisterOwner da de alta un owner. El email debe estar libre en los dos
// namespaces, no solo en el del rol solicitado.
func (s *AuthService) RegisterOwner(ctx context.Context, input RegisterOwnerInput) (domain.Owner, error) {
	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.Owner{}, ErrInvalidEmail
	}
	if err := s.checkEmailFree(ctx, emailAddr); err != nil {
		return domain.Owner{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(input.Password)), bcrypt.DefaultCost)
	if err != nil {
		return domain.Owner{}, err
	}

	owner := domain.Owner{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        emailAddr,
		PasswordHash: string(hash),
		Phone:        strings.TrimSpace(input.Phone),
		Address:      strings.TrimSpace(input.Address),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.owners.Create(ctx, owner); err != nil {
		return domain.Owner{}, err
	}
	return owner, nil
}

type RegisterDoctorInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterDoctor da de alta un doctor. Mismas reglas de unicidad de email
// que RegisterOwner.
func (s *AuthService) RegisterDoctor(ctx context.Context, input RegisterDoctorInput) (domain.Doctor, error) {
	emailAddr := normalizeEmail(input.Email)
	if emailAddr == "" {
		return domain.Doctor{}, ErrInvalidEmail
	}
	if err := s.checkEmailFree(ctx, emailAddr); err != nil {
		return domain.Doctor{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(input.Password)), bcrypt.DefaultCost)
	if err != nil {
		return domain.Doctor{}, err
	}

	doctor := domain.Doctor{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        emailAddr,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.doctors.Create(ctx, doctor); err != nil {
		return domain.Doctor{}, err
	}
	return doctor, nil
}

func (s *AuthService) checkEmailFree(ctx context.Context, emailAddr string) error {
	taken, err := s.owners.EmailExists(ctx, emailAddr)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	taken, err = s.doctors.EmailExists(ctx, emailAddr)
	if err != nil {
		return err
	}
	if taken {
		return ErrEmailTaken
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
