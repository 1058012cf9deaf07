package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"trimly.backend/internal/domain/entities"
	"trimly.backend/internal/usecases"
)

const (
	// APIKeyHeader carries the reseller console key
	APIKeyHeader = "X-Api-Key"
	// ResellerIDKey is the context key for the authenticated reseller
	ResellerIDKey = "resellerId"
)

// APIKeyAuthMiddleware authenticates reseller console calls with an API key
func APIKeyAuthMiddleware(resellerUC *usecases.ResellerUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "API key is required",
			})
			return
		}

		reseller, err := resellerUC.AuthenticateAPIKey(c.Request.Context(), key)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid API key",
			})
			return
		}

		c.Set(ResellerIDKey, reseller.ID)
		c.Next()
	}
}

// GetResellerID gets the authenticated reseller id from context
func GetResellerID(c *gin.Context) (uuid.UUID, bool) {
	id, exists := c.Get(ResellerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return id.(uuid.UUID), true
}

// RequireResellerOf rejects requests for businesses the authenticated
// reseller does not operate
func RequireResellerOf(business *entities.Business, c *gin.Context) bool {
	resellerID, ok := GetResellerID(c)
	if !ok || business.ResellerID == nil || *business.ResellerID != resellerID {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"message": "Business does not belong to this reseller",
		})
		return false
	}
	return true
}
