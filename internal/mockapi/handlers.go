package mockapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thenoetrevino/snipboard/internal/api"
)

func (s *Server) handleLogin(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "username and password are required"})
		return
	}

	password, ok := s.cfg.Users[req.Username]
	if !ok || password != req.Password {
		s.logger.Info("rejected login", "username", req.Username)
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid credentials"})
		return
	}

	token := uuid.NewString()
	expires := s.now().Add(s.cfg.TokenTTL)

	s.mu.Lock()
	s.tokens[token] = expires
	s.mu.Unlock()
	s.metrics.ActiveSessions.Inc()

	s.logger.Info("issued token", "username", req.Username, "expires_at", expires)
	c.JSON(http.StatusOK, api.LoginResponse{Token: token, ExpiresAt: expires})
}

func (s *Server) handleList(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.list())
}

func (s *Server) handleCreate(c *gin.Context) {
	var req api.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid JSON body"})
		return
	}
	if blank(req.Title) || blank(req.Code) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "title and code are required"})
		return
	}
	c.JSON(http.StatusCreated, s.store.create(req))
}

func (s *Server) handleUpdate(c *gin.Context) {
	var req api.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid JSON body"})
		return
	}
	if (req.Title != nil && blank(req.Title)) || (req.Code != nil && blank(req.Code)) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "title and code cannot be empty"})
		return
	}

	rec, err := s.store.update(c.Param("id"), req)
	if errors.Is(err, errNoSnippet) {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
