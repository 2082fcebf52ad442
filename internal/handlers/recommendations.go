// internal/handlers/recommendations.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

type RecommendationHandler struct {
	recommendationService *services.RecommendationService
}

func NewRecommendationHandler(recommendationService *services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// GET /recommendations
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	principal, ok := utils.GetPrincipalFromContext(c)
	if !ok {
		utils.UnauthorizedResponse(c, "")
		return
	}

	items, err := h.recommendationService.Recommend(c.Request.Context(), principal.UserID)
	if err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}
	utils.SuccessResponseWithMeta(c, items, gin.H{"count": len(items)})
}
