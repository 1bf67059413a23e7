package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/studyhive-api/internal/middleware"
	"github.com/noah-isme/studyhive-api/internal/models"
	"github.com/noah-isme/studyhive-api/internal/service"
	appErrors "github.com/noah-isme/studyhive-api/pkg/errors"
	"github.com/noah-isme/studyhive-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func actorEmail(c *gin.Context) string {
	if claims := claimsFromContext(c); claims != nil {
		return claims.Email
	}
	return ""
}

func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return false
	}
	return true
}

// writeResponse sends a write acknowledgement, flagging pending follow-up writes in meta.
func writeResponse(c *gin.Context, status int, data interface{}, partial bool) {
	middleware.SetPartialWrite(c, partial)
	response.JSON(c, status, data, middleware.ExtractMeta(c))
}

// upsertResponse returns 201 with the acknowledgement on insert, 200 with the stored document otherwise.
func upsertResponse(c *gin.Context, outcome *service.UpsertOutcome) {
	if outcome.Created() {
		response.JSON(c, http.StatusCreated, outcome.Result, middleware.ExtractMeta(c))
		return
	}
	response.JSON(c, http.StatusOK, outcome.Existing, middleware.ExtractMeta(c))
}
