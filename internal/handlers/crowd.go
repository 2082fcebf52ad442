// internal/handlers/crowd.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

type CrowdHandler struct {
	crowdService *services.CrowdService
}

func NewCrowdHandler(crowdService *services.CrowdService) *CrowdHandler {
	return &CrowdHandler{crowdService: crowdService}
}

// POST /establishments/:id/crowd
func (h *CrowdHandler) Record(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	principal, ok := utils.GetPrincipalFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}
	establishmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var counts services.CrowdCounts
	if !bindJSON(c, &counts) {
		return
	}

	snapshot, err := h.crowdService.Record(c.Request.Context(), principal, establishmentID, counts)
	if err != nil {
		respondError(c, err, i18n.KeyEstablishmentNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  i18n.T(lang, i18n.KeyCrowdRecorded),
		"snapshot": snapshot,
	})
}

// GET /establishments/:id/crowd
func (h *CrowdHandler) Latest(c *gin.Context) {
	establishmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	snapshot, err := h.crowdService.Latest(c.Request.Context(), establishmentID)
	if err != nil {
		respondError(c, err, i18n.KeyCrowdNotFound)
		return
	}
	utils.SuccessResponse(c, snapshot)
}
