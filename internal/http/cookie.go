package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// authCookieName es la única cookie de sesión que maneja el servicio.
const authCookieName = "auth_token"

// setAuthCookie adjunta el token firmado como cookie HTTP-only con
// SameSite=Lax, alcance a todo el sitio y expiración fija.
func setAuthCookie(c *gin.Context, token string, ttl time.Duration, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// clearAuthCookie sobreescribe la cookie con un valor ya expirado.
// Funciona igual exista o no una sesión previa.
func clearAuthCookie(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(authCookieName, "", -1, "/", "", secure, true)
}
