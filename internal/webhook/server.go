package webhook

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// StatsProvider feeds the supplemental /stats endpoint (SPEC_FULL §5),
// giving operators a cheap way to see the worker is alive between poll
// cycles without querying Postgres directly.
type StatsProvider interface {
	Stats() map[string]any
}

// NewRouter builds the Gin engine for the reaction webhook plus a small
// ops surface, grounded on the teacher's router/middleware composition
// (rate-limit then auth then handlers on /slack/events; auth only on /stats).
func NewRouter(receiver *ReactionReceiver, stats StatsProvider) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	limiter := NewRateLimiter(30, 10)
	auth := AuthMiddleware(tokenFromEnv())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	if stats != nil {
		r.GET("/stats", auth, func(c *gin.Context) {
			c.JSON(http.StatusOK, stats.Stats())
		})
	}

	r.POST("/slack/events", limiter.Middleware(), auth, receiver.Handle)

	return r
}
