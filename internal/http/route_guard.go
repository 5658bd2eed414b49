package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/service"
)

// Rutas de navegación que el guard conoce.
const (
	pathHome       = "/"
	pathLogin      = "/login"
	pathSignup     = "/signup"
	pathOwnerDash  = "/dashboard/owner"
	pathDoctorDash = "/dashboard/doctor"
)

// guardState es el estado de autenticación de un request de página.
type guardState int

const (
	guardNoToken guardState = iota
	guardInvalidToken
	guardValidOwner
	guardValidDoctor
)

// guardTarget es la tabla de política del route guard: función pura de
// (estado, path) al destino de redirección, o "" para dejar pasar.
// Las reglas se evalúan en este orden de precedencia:
//  1. sin token: login/signup pasan, el resto va a login
//  2. token inválido: siempre a login (el caller borra la cookie)
//  3. doctor sobre el dashboard de owner: a su propio dashboard
//  4. owner sobre el dashboard de doctor: a su propio dashboard
//  5. token válido sobre login/signup: a home
//  6. pasa sin modificar
func guardTarget(state guardState, path string) string {
	isAuthPage := path == pathLogin || path == pathSignup

	switch state {
	case guardNoToken:
		if isAuthPage {
			return ""
		}
		return pathLogin
	case guardInvalidToken:
		return pathLogin
	case guardValidDoctor:
		if strings.HasPrefix(path, pathOwnerDash) {
			return pathDoctorDash
		}
	case guardValidOwner:
		if strings.HasPrefix(path, pathDoctorDash) {
			return pathOwnerDash
		}
	}

	if isAuthPage {
		return pathHome
	}
	return ""
}

// RouteGuard intercepta la navegación de páginas: extrae la cookie,
// verifica el token y decide entre dejar pasar o redirigir según la tabla
// de política. Su único efecto secundario es borrar la cookie inválida.
func RouteGuard(tokenSvc *service.TokenService, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		state := guardNoToken
		var claims service.Claims

		if token, err := c.Cookie(authCookieName); err == nil && token != "" {
			parsed, perr := tokenSvc.Parse(token)
			switch {
			case perr != nil:
				state = guardInvalidToken
			case parsed.Role == domain.RoleDoctor:
				state, claims = guardValidDoctor, parsed
			default:
				state, claims = guardValidOwner, parsed
			}
		}

		if state == guardInvalidToken {
			clearAuthCookie(c, cookieSecure)
		}

		if target := guardTarget(state, c.Request.URL.Path); target != "" {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}

		if state == guardValidOwner || state == guardValidDoctor {
			c.Set(authClaimsKey, claims)
		}
		c.Next()
	}
}
