package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/service"
)

const authClaimsKey = "auth_claims"

// AuthRequired valida la cookie de sesión en rutas de API y guarda los
// claims en el contexto. A diferencia del route guard, responde JSON:
// 401 ante cookie ausente o token inválido, nunca redirige.
func AuthRequired(tokenSvc *service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenSvc == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "auth not configured"})
			c.Abort()
			return
		}

		token, err := c.Cookie(authCookieName)
		if err != nil || token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
			c.Abort()
			return
		}

		claims, err := tokenSvc.Parse(token)
		if err != nil {
			if errors.Is(err, service.ErrSecretMissing) {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "server configuration error"})
				c.Abort()
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			c.Abort()
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// RequireRole corta con 403 cuando el principal autenticado no tiene el
// rol exigido por la ruta.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetAuthClaims(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
			c.Abort()
			return
		}
		if claims.Role != role {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden for this role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetAuthClaims obtiene los claims verificados desde el contexto.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}
