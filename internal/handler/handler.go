// Package handler provides the HTTP surface through which the UI layer
// triggers settings operations.
package handler

import (
	"errors"
	"net/http"

	apperrors "wallet-settings/internal/errors"
	"wallet-settings/internal/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/dig"
)

// sessionTokenHeader carries the session token issued at login.
const sessionTokenHeader = "X-Session-Token"

// Server contains dependencies for HTTP handlers
type Server struct {
	Sessions *session.Manager
}

// NewServerParams defines the dependencies for the NewServer constructor.
type NewServerParams struct {
	dig.In
	Sessions *session.Manager
}

// NewServer creates a new handler instance with dependencies injected by dig.
func NewServer(params NewServerParams) *Server {
	return &Server{Sessions: params.Sessions}
}

// Health reports server liveness.
func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// currentSession resolves the request's session or writes a 401.
func (s *Server) currentSession(c *gin.Context) (*session.Session, bool) {
	token := c.GetHeader(sessionTokenHeader)
	sess, err := s.Sessions.Get(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "no active session"})
		return nil, false
	}
	return sess, true
}

// respondError maps the settings error taxonomy onto HTTP statuses. Nothing
// here is fatal to the process.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		status = http.StatusForbidden
	case errors.Is(err, apperrors.ErrNoSession):
		status = http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrIntrinsicAsset):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNoPendingReset):
		status = http.StatusConflict
	case errors.Is(err, apperrors.ErrPersistence):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"success": false, "message": err.Error()})
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	AccountID string `json:"account_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// Login authenticates the account and starts a settings session.
func (s *Server) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid request format"})
		return
	}

	sess, err := s.Sessions.Login(c.Request.Context(), req.AccountID, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondOK(c, gin.H{
		"token":    sess.Token,
		"settings": sess.Cache.Snapshot(),
	})
}

// Logout discards the session.
func (s *Server) Logout(c *gin.Context) {
	s.Sessions.Logout(c.GetHeader(sessionTokenHeader))
	respondOK(c, nil)
}
