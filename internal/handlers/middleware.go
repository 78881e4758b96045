package handlers

import (
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/mani1234567sk/backend-dream/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	principalKey    = "principal"
)

// requestID tags the request with an id and puts a logger carrying it into
// the request context.
func (h *Handler) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		logger := h.logger.With().Str("request_id", requestID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		c.Header(requestIDHeader, requestID)
		c.Next()
	}
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		zerolog.Ctx(c.Request.Context()).Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request completed")
	}
}

func (h *Handler) recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				zerolog.Ctx(c.Request.Context()).Error().
					Interface("error", err).
					Str("stack", string(debug.Stack())).
					Msg("panic recovered")
				h.errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
			}
		}()
		c.Next()
	}
}

// authRequired rejects requests without a valid bearer token and stores the
// caller for the handlers down the chain.
func (h *Handler) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			h.handleError(c, domain.ErrNoToken)
			return
		}

		principal, err := h.tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			zerolog.Ctx(c.Request.Context()).Debug().Err(err).Msg("token rejected")
			h.handleError(c, domain.ErrInvalidToken)
			return
		}

		logger := zerolog.Ctx(c.Request.Context()).With().Str("user_id", principal.UserID).Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))
		c.Set(principalKey, *principal)
		c.Next()
	}
}

func (h *Handler) adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !caller(c).IsAdmin() {
			h.handleError(c, domain.ErrAdminOnly)
			return
		}
		c.Next()
	}
}

func caller(c *gin.Context) domain.Principal {
	if v, ok := c.Get(principalKey); ok {
		if p, ok := v.(domain.Principal); ok {
			return p
		}
	}
	return domain.Principal{}
}

// idParam reads a route id in canonical UUID form. An id that is not a UUID
// cannot name a stored row and is answered with notFound.
func (h *Handler) idParam(c *gin.Context, name string, notFound error) (string, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.handleError(c, notFound)
		return "", false
	}
	return id.String(), true
}
