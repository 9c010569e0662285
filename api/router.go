package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/safarpk/safarpk/config"
	"github.com/safarpk/safarpk/internal/domain"
)

type Handlers struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Destinations *DestinationHandler
	Vehicles     *VehicleHandler
	Pricing      *PricingHandler
	Calendar     *CalendarHandler
	Stats        *StatsHandler
}

func NewRouter(cfg config.HTTPConfig, auth Authenticator, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), gin.Recovery(), cors.New(corsConfig(cfg.AllowedOrigins)))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("WARNING: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not_found", "route not found", nil)
	})

	if cfg.SwaggerDir != "" {
		r.Static("/swagger", cfg.SwaggerDir)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))))
	}

	signedIn := RequireAuth(auth)
	admin := RequireRoles(domain.RoleAdmin)

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h.Auth.Register(api.Group("/auth"))
	h.Users.Register(api.Group("/users", signedIn, admin))
	h.Destinations.Register(api.Group("/destinations"), signedIn, admin)
	h.Vehicles.Register(api.Group("/vehicles"), signedIn, RequireRoles(domain.RoleDriver, domain.RoleAdmin))
	h.Pricing.Register(api.Group("/pricing"), signedIn, RequireRoles(domain.RoleDriver, domain.RoleHotel, domain.RoleAdmin))
	h.Calendar.Register(api.Group("/calendar", signedIn))
	h.Stats.Register(api.Group("/stats", signedIn, admin))

	return r
}

// corsConfig allows every origin when none are configured.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
