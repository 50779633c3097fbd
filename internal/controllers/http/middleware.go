package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/metrics"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// AuthRequired resolves the bearer token into a Principal and aborts with
// 401 when it cannot. Nothing below the handler layer sees a request
// without an explicit principal.
func AuthRequired(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		principal, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(principalKey, *principal)
		c.Next()
	}
}

func currentPrincipal(c *gin.Context) domain.Principal {
	v, _ := c.Get(principalKey)
	principal, _ := v.(domain.Principal)
	return principal
}

// Instrument records request counts and latency per route template.
func Instrument(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.Requests.WithLabelValues(handler, status).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
