// internal/handlers/nearby.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/geo"
	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

type NearbyHandler struct {
	proximityService *services.ProximityService
	defaultRadiusKm  float64
}

func NewNearbyHandler(proximityService *services.ProximityService, defaultRadiusKm float64) *NearbyHandler {
	return &NearbyHandler{
		proximityService: proximityService,
		defaultRadiusKm:  defaultRadiusKm,
	}
}

// GET /nearby-restaurants?lat=&lng=&radius=
func (h *NearbyHandler) GetNearby(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	lat, latOK, latErr := utils.QueryFloat(c, "lat")
	lng, lngOK, lngErr := utils.QueryFloat(c, "lng")
	if !latOK || !lngOK {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, "lat and lng"), nil)
		return
	}
	for _, err := range []error{latErr, lngErr} {
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyNearbyInvalidQuery), err.Error())
			return
		}
	}

	radius, present, err := utils.QueryFloat(c, "radius")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyNearbyInvalidQuery), err.Error())
		return
	}
	if !present {
		radius = h.defaultRadiusKm
	}

	results, err := h.proximityService.FindNearby(c.Request.Context(), services.NearbyQuery{
		Origin:   geo.Point{Lat: lat, Lng: lng},
		RadiusKm: radius,
	})
	if err != nil {
		respondError(c, err, i18n.KeyNotFound)
		return
	}

	utils.SuccessResponseWithMeta(c, results, gin.H{
		"count":     len(results),
		"radius_km": radius,
	})
}
