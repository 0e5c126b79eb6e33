package services

import (
	"context"

	"shinyshoes/internal/domain"
)

// AuthService is a sign-in stub: there are no credentials, login adopts the mock admin.
type AuthService struct {
	Sessions *SessionRegistry
}

func NewAuthService(sessions *SessionRegistry) *AuthService {
	return &AuthService{Sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, sid string) domain.User {
	u := domain.MockUser
	s.Sessions.Get(ctx, sid).login(u)
	return u
}

func (s *AuthService) Logout(_ context.Context, sid string) {
	if sess, ok := s.Sessions.Lookup(sid); ok {
		sess.logout()
	}
}

func (s *AuthService) CurrentUser(_ context.Context, sid string) *domain.User {
	sess, ok := s.Sessions.Lookup(sid)
	if !ok {
		return nil
	}
	return sess.User()
}
