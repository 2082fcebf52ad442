// internal/handlers/establishments.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

type EstablishmentHandler struct {
	establishmentService *services.EstablishmentService
}

func NewEstablishmentHandler(establishmentService *services.EstablishmentService) *EstablishmentHandler {
	return &EstablishmentHandler{establishmentService: establishmentService}
}

// PUT /establishments/:id/location
func (h *EstablishmentHandler) UpdateLocation(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	principal, ok := utils.GetPrincipalFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.LocationUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	// ownership is checked before the body is validated
	establishment, err := h.establishmentService.UpdateLocation(c.Request.Context(), principal, id, req)
	if err != nil {
		respondError(c, err, i18n.KeyEstablishmentNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":       i18n.T(lang, i18n.KeyEstablishmentUpdated),
		"establishment": establishment,
	})
}
