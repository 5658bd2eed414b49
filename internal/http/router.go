package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/domain"
	"remote-pet-diagnosis/internal/service"
)

// RouterOptions agrupa las dependencias del router.
type RouterOptions struct {
	Logger       *zap.Logger
	TokenService *service.TokenService
	Auth         *AuthHandler
	Pets         *PetHandler
	Dashboards   *DashboardHandler
	CookieSecure bool
}

// NewRouter configura el router de Gin con middlewares y rutas.
// Las rutas de página pasan por el route guard (política de redirects);
// las rutas /api responden JSON y usan AuthRequired/RequireRole.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(opts.Logger), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Páginas bajo el route guard.
	guard := RouteGuard(opts.TokenService, opts.CookieSecure)
	r.GET(pathHome, guard, homePage)
	r.GET(pathLogin, guard, authPage("login"))
	r.GET(pathSignup, guard, authPage("signup"))
	r.GET(pathOwnerDash, guard, opts.Dashboards.OwnerDashboard)
	r.GET(pathDoctorDash, guard, opts.Dashboards.DoctorDashboard)

	// API JSON.
	api := r.Group("/api")
	api.Use(jsonContentTypeMiddleware())

	auth := api.Group("/auth")
	auth.POST("/login", opts.Auth.Login)
	auth.POST("/signup", opts.Auth.Signup)
	auth.POST("/logout", opts.Auth.Logout)

	api.GET("/me", AuthRequired(opts.TokenService), opts.Auth.Me)

	pets := api.Group("/pets", AuthRequired(opts.TokenService), RequireRole(domain.RoleOwner))
	pets.POST("", opts.Pets.AddPet)
	pets.DELETE("/:id", opts.Pets.DeletePet)

	api.GET("/dashboard/owner", AuthRequired(opts.TokenService), RequireRole(domain.RoleOwner), opts.Dashboards.OwnerDashboard)
	api.GET("/dashboard/doctor", AuthRequired(opts.TokenService), RequireRole(domain.RoleDoctor), opts.Dashboards.DoctorDashboard)
	api.POST("/consultations", AuthRequired(opts.TokenService), RequireRole(domain.RoleDoctor), opts.Dashboards.FileConsultation)

	return r
}

// homePage responde un documento mínimo de estado; si hay sesión válida
// incluye el rol para que el cliente elija dashboard.
func homePage(c *gin.Context) {
	if claims, ok := GetAuthClaims(c); ok {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "role": claims.Role})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// authPage marca las páginas de login/signup; el contenido real lo sirve
// el frontend, acá solo importa que el guard las deje pasar.
func authPage(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"page": name})
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
