// internal/handlers/events.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

type EventHandler struct {
	eventService *services.EventService
}

func NewEventHandler(eventService *services.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// POST /events
func (h *EventHandler) RecordInteraction(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RecordInteractionRequest
	if !bindJSON(c, &req) {
		return
	}

	event, err := h.eventService.RecordInteraction(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEventRecorded),
		"event":   event,
	})
}

// POST /engagements
func (h *EventHandler) RecordEngagement(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RecordEngagementRequest
	if !bindJSON(c, &req) {
		return
	}

	var userID *uuid.UUID
	if principal, ok := utils.GetPrincipalFromContext(c); ok {
		userID = &principal.UserID
	}

	event, err := h.eventService.RecordEngagement(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, i18n.KeyItemNotFound)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyEventRecorded),
		"event":   event,
	})
}
