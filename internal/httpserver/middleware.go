package httpserver

import (
	"fmt"
	"net/http"
	"time"

	"skincare-storefront/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	sessionCookie = "glow_session-id"
	sessionHeader = "X-Session-ID"
	sessionCtxKey = "session"
)

// customRecovery logs panics and answers 500.
func customRecovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
		})
	})
}

func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		fields := []zap.Field{
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if s, ok := c.Get(sessionCtxKey); ok {
			fields = append(fields, zap.String("session_id", s.(*session.Session).ID))
		}
		logger.Info("http request", fields...)
	}
}

// sessionMiddleware resolves the shopper session from the X-Session-ID header
// or the session cookie, issuing a new one when neither names a live session.
func sessionMiddleware(sessions *session.Manager, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(sessionHeader)
		if id == "" {
			id, _ = c.Cookie(sessionCookie)
		}
		sess, created := sessions.Get(c.Request.Context(), id)
		if created || sess.ID != id {
			maxAge := int(ttl.Seconds())
			if maxAge <= 0 {
				maxAge = int(session.DefaultTTL.Seconds())
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sess.ID, maxAge, "/", "", false, true)
		}
		c.Header(sessionHeader, sess.ID)
		c.Set(sessionCtxKey, sess)
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionCtxKey)
	if !ok {
		panic(fmt.Sprintf("no session on %s %s", c.Request.Method, c.FullPath()))
	}
	return v.(*session.Session)
}
