package service

import (
	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/deppfellow/catalog-api/internal/server"
)

// AuthService configures Clerk for the bearer token checks on write routes.
type AuthService struct {
	server *server.Server
}

// NewAuthService registers the Clerk secret key when one is configured.
func NewAuthService(s *server.Server) *AuthService {
	if s.Config != nil && s.Config.Auth.Enabled() {
		clerk.SetKey(s.Config.Auth.SecretKey)
	}
	return &AuthService{
		server: s,
	}
}

// Enabled reports whether write routes require a Clerk session.
func (a *AuthService) Enabled() bool {
	return a.server.Config != nil && a.server.Config.Auth.Enabled()
}
