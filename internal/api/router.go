package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"collections-assign-backend/config"
	"collections-assign-backend/internal/availability"
	"collections-assign-backend/internal/engine"
	"collections-assign-backend/internal/mw"
	"collections-assign-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, eng *engine.Engine, calc *availability.Calculator, cfg *config.Config, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	handler := NewHandler(s, eng, calc, webpushOptions, cfg.Assignment.OperationTimeout)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	// Cache only the roster: availability and attention are live reads and
	// must never be served stale.
	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	cacheStore := cache.New(cacheTTL, 2*cacheTTL)
	caching := mw.Cache(cacheStore, cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/availability", handler.GetAvailability)
		api.GET("/attention", handler.GetAttention)
		api.GET("/resources", caching, handler.GetResources)

		api.POST("/assignments", handler.PostAssignment)
		api.PUT("/assignments/:ticket_id", handler.PutAssignment)
		api.POST("/transfers", handler.PostTransfer)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
