package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"remote-pet-diagnosis/internal/service"
)

// PetHandler mantiene dependencias para endpoints de mascotas.
type PetHandler struct {
	logger  *zap.Logger
	petServ *service.PetService
}

func NewPetHandler(logger *zap.Logger, petServ *service.PetService) *PetHandler {
	return &PetHandler{
		logger:  logger,
		petServ: petServ,
	}
}

// AddPet maneja POST /api/pets. Solo owners llegan acá (RequireRole).
func (h *PetHandler) AddPet(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Species string `json:"species" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid add pet request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"message": "name and species are required"})
		return
	}

	pet, err := h.petServ.AddPet(c.Request.Context(), claims.SubjectID, req.Name, req.Species)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetExists):
			c.JSON(http.StatusConflict, gin.H{"message": "you already added a pet with this name"})
		case errors.Is(err, service.ErrInvalidPet):
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid pet data"})
		default:
			h.logger.Error("add pet failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not add pet"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "pet added successfully", "pet": pet})
}

// DeletePet maneja DELETE /api/pets/:id.
func (h *PetHandler) DeletePet(c *gin.Context) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "not authenticated"})
		return
	}

	petID := c.Param("id")
	if petID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "pet id is required"})
		return
	}

	if err := h.petServ.DeletePet(c.Request.Context(), claims.SubjectID, petID); err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			c.JSON(http.StatusNotFound, gin.H{"message": "pet not found"})
		case errors.Is(err, service.ErrNotPetOwner):
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden"})
		default:
			h.logger.Error("delete pet failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "could not delete pet"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pet deleted successfully"})
}
