package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/service"
)

// DashboardHandler mantiene dependencias para las proyecciones por rol
// y el alta de reportes de consulta.
type DashboardHandler struct {
	logger      *zap.Logger
	dashServ    *service.DashboardService
	consultServ *service.ConsultationService
}

func NewDashboardHandler(logger *zap.Logger, dashServ *service.DashboardService, consultServ *service.ConsultationService) *DashboardHandler {
	return &DashboardHandler{
		logger:      logger,
		dashServ:    dashServ,
		consultServ: consultServ,
	}
}

// OwnerDashboard maneja GET /dashboard/owner y GET /api/dashboard/owner.
func (h *DashboardHandler) OwnerDashboard(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	dashboard, err := h.dashServ.OwnerDashboard(c.Request.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, service.ErrOwnerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "owner not found"})
			return
		}
		h.logger.Error("owner dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// DoctorDashboard maneja GET /dashboard/doctor y GET /api/dashboard/doctor.
func (h *DashboardHandler) DoctorDashboard(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	dashboard, err := h.dashServ.DoctorDashboard(c.Request.Context(), claims.SubjectID)
	if err != nil {
		if errors.Is(err, service.ErrDoctorNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "doctor not found"})
			return
		}
		h.logger.Error("doctor dashboard failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "could not load dashboard"})
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// FileConsultation maneja POST /api/consultations (solo doctores).
func (h *DashboardHandler) FileConsultation(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var req struct {
		PetID  string `json:"pet_id" binding:"required"`
		Date   string `json:"date"`
		Report string `json:"report"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid consultation request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "pet_id is required"})
		return
	}

	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(time.RFC3339, req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "date must be RFC3339"})
			return
		}
		date = parsed
	}

	consultation, err := h.consultServ.FileReport(c.Request.Context(), claims.SubjectID, req.PetID, date, req.Report)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "pet not found"})
		case errors.Is(err, service.ErrInvalidConsultation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid consultation data"})
		default:
			h.logger.Error("file consultation failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not file consultation"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "consultation filed", "consultation": consultation})
}
