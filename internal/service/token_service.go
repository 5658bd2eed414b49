package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"remote-pet-diagnosis/internal/domain"
)

// TokenService emite y valida los tokens de sesión firmados.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// Claims es la única forma canónica del payload decodificado: identidad,
// email y rol. Reemplaza los chequeos ad hoc de presencia de campos.
type Claims struct {
	SubjectID string      `json:"uid"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	jwt.RegisteredClaims
}

var (
	ErrSecretMissing = errors.New("signing secret missing")
	ErrTokenInvalid  = errors.New("token invalid")
	ErrTokenExpired  = errors.New("token expired")
)

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "remote-pet-diagnosis",
	}
}

// TTL devuelve la vida útil fija de los tokens emitidos.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue firma un token HS256 con los claims del principal y expiración fija.
func (s *TokenService) Issue(principal domain.Principal) (string, error) {
	if len(s.secret) == 0 {
		return "", ErrSecretMissing
	}
	now := time.Now().UTC()
	claims := Claims{
		SubjectID: principal.ID,
		Email:     principal.Email,
		Role:      principal.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse verifica firma y expiración y devuelve los claims. Nunca devuelve
// claims parciales: ante cualquier falla el resultado es el error tipado.
func (s *TokenService) Parse(tokenString string) (Claims, error) {
	if len(s.secret) == 0 {
		return Claims{}, ErrSecretMissing
	}
	if strings.TrimSpace(tokenString) == "" {
		return Claims{}, ErrTokenInvalid
	}
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	_, err := parser.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, ErrTokenInvalid
	}
	if !s.isValidClaims(claims) {
		return Claims{}, ErrTokenInvalid
	}
	return claims, nil
}

func (s *TokenService) isValidClaims(claims Claims) bool {
	if strings.TrimSpace(claims.SubjectID) == "" {
		return false
	}
	if claims.Subject != claims.SubjectID {
		return false
	}
	if _, ok := domain.ParseRole(string(claims.Role)); !ok {
		return false
	}
	return claims.Issuer == s.issuer
}
