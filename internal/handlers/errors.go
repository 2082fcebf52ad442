// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/deliciae/discovery-core/internal/i18n"
	"github.com/deliciae/discovery-core/internal/services"
	"github.com/deliciae/discovery-core/internal/utils"
)

// respondError maps service errors onto the response envelope.
// notFoundKey names the resource in the 404 message.
func respondError(c *gin.Context, err error, notFoundKey string) {
	var queryErr *services.QueryError
	switch {
	case errors.As(err, &queryErr):
		utils.BadRequestResponse(c, queryErr.Error(), gin.H{
			"field":  queryErr.Field,
			"reason": queryErr.Reason,
		})
	case errors.Is(err, services.ErrInvalidQuery):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, notFoundKey)
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "")
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		utils.InternalErrorResponse(c, "")
	}
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		lang := utils.GetLangFromContext(c)
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, name), nil)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the body, writing the 400 response itself.
func bindJSON(c *gin.Context, req interface{}) bool {
	lang := utils.GetLangFromContext(c)
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return false
	}
	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return false
	}
	return true
}
