// internal/handlers/scores.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

type ScoresHandler struct {
	scoringService *services.ScoringService
	defaultWindow  time.Duration
}

func NewScoresHandler(scoringService *services.ScoringService, defaultWindow time.Duration) *ScoresHandler {
	return &ScoresHandler{
		scoringService: scoringService,
		defaultWindow:  defaultWindow,
	}
}

type RefreshRequest struct {
	WindowHours *float64 `json:"window_hours" validate:"omitempty,gt=0,lte=720"`
}

type PopularityRequest struct {
	PopularityScore *float64 `json:"popularity_score" validate:"required,gte=0,lte=100"`
}

// POST /trends/refresh
func (h *ScoresHandler) Refresh(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req RefreshRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	window := h.defaultWindow
	if req.WindowHours != nil {
		window = time.Duration(*req.WindowHours * float64(time.Hour))
	}

	report, err := h.scoringService.RecomputeScores(c.Request.Context(), window)
	if err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}

	message := i18n.T(lang, i18n.KeyScoresRecomputed)
	if report.Err() != nil {
		message = i18n.T(lang, i18n.KeyScoresPartial, report.SkippedCount)
	}
	utils.SuccessResponse(c, gin.H{
		"message": message,
		"report":  report,
	})
}

// PUT /items/:id/popularity
func (h *ScoresHandler) SetPopularity(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req PopularityRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.scoringService.SetPopularity(c.Request.Context(), itemID, *req.PopularityScore); err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":          i18n.T(lang, i18n.KeyPopularityUpdated),
		"item_id":          itemID,
		"popularity_score": *req.PopularityScore,
	})
}
