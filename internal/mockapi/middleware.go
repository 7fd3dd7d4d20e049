package mockapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thenoetrevino/snipboard/internal/api"
)

// countRequests records every response by route and status
func (s *Server) countRequests() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.Requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// injectFaults answers with the planned failure while the plan lasts
func (s *Server) injectFaults() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		plan := s.faults
		if plan.count > 0 {
			s.faults.count--
		}
		s.mu.Unlock()

		if plan.count > 0 {
			s.metrics.InjectedFaults.Inc()
			s.logger.Debug("injecting failure", "path", c.Request.URL.Path, "status", plan.status)
			c.AbortWithStatusJSON(plan.status, api.ErrorResponse{Error: http.StatusText(plan.status)})
			return
		}
		c.Next()
	}
}

// requireToken rejects requests without a live bearer token
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}

		s.mu.Lock()
		expiry, ok := s.tokens[token]
		if ok && !s.now().Before(expiry) {
			delete(s.tokens, token)
			s.metrics.ActiveSessions.Dec()
			ok = false
		}
		s.mu.Unlock()

		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or expired token"})
			return
		}
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}
