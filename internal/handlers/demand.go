// internal/handlers/demand.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

const dateLayout = "2006-01-02"

type DemandHandler struct {
	now func() time.Time
}

func NewDemandHandler() *DemandHandler {
	return &DemandHandler{now: time.Now}
}

// GET /predict/demand?date=YYYY-MM-DD
func (h *DemandHandler) PredictDemand(c *gin.Context) {
	day := h.now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			lang := utils.GetLangFromContext(c)
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "date"), "expected YYYY-MM-DD")
			return
		}
		day = parsed
	}

	forecast := services.PredictDemand(day.Weekday())
	utils.SuccessResponse(c, gin.H{
		"date":     day.Format(dateLayout),
		"forecast": forecast,
	})
}
