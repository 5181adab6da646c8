package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/apartments/internal/config"
)

// AllowedMethods are the methods the API serves, advertised to listed origins.
var AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}

// CORS creates a middleware that handles Cross-Origin Resource Sharing (CORS).
//
// With the wildcard origin configured every origin is admitted and echoed
// back, and preflights are granted whatever method and headers they ask
// for, so credentialed browser requests keep working. Otherwise only the
// listed origins pass, with a fixed method and header set.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsConfig := cors.Config{
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           24 * time.Hour,
	}

	if !cfg.AllowAll() {
		corsConfig.AllowOrigins = cfg.Origins
		corsConfig.AllowMethods = AllowedMethods
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader}
		return cors.New(corsConfig)
	}

	// AllowMethods and AllowHeaders stay empty so cors.New leaves the
	// mirrored preflight headers in place.
	corsConfig.AllowOriginFunc = func(string) bool { return true }
	handler := cors.New(corsConfig)

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions && c.GetHeader("Origin") != "" {
			mirrorPreflight(c)
		}
		handler(c)
	}
}

// mirrorPreflight grants the method and headers a preflight request asks for.
func mirrorPreflight(c *gin.Context) {
	method := c.GetHeader("Access-Control-Request-Method")
	if method == "" {
		method = strings.Join(AllowedMethods, ",")
	}
	c.Header("Access-Control-Allow-Methods", strings.ToUpper(method))

	if headers := c.GetHeader("Access-Control-Request-Headers"); headers != "" {
		c.Header("Access-Control-Allow-Headers", headers)
	}
	c.Writer.Header().Add("Vary", "Access-Control-Request-Method")
	c.Writer.Header().Add("Vary", "Access-Control-Request-Headers")
}
