package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS returns a CORS middleware allowing the given origins.
// An empty list or a "*" entry allows all origins (local development).
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(allowedOrigins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		for _, origin := range allowedOrigins {
			if origin == "*" {
				cfg.AllowAllOrigins = true
				cfg.AllowCredentials = false
				cfg.AllowOrigins = nil
				break
			}
			cfg.AllowOrigins = append(cfg.AllowOrigins, origin)
		}
	}

	return cors.New(cfg)
}
