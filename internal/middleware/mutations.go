package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/college-erp-api/pkg/errors"
	"github.com/noah-isme/college-erp-api/pkg/response"
)

// FeatureGate answers 403 for every request while the feature is switched off.
func FeatureGate(enabled bool, feature string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, feature+" are disabled"))
			c.Abort()
			return
		}
		c.Next()
	}
}
