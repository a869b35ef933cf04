package auth

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/procurement/internal/domain/models"
)

// Service performs demo logins and restores sessions from tokens.
type Service struct {
	directory   *Directory
	codec       *Codec
	revocations *Revocations
	logger      *zap.Logger
}

// NewService wires the credential list, token codec and revocation registry.
func NewService(directory *Directory, codec *Codec, revocations *Revocations, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if revocations == nil {
		revocations = NewRevocations()
	}
	return &Service{
		directory:   directory,
		codec:       codec,
		revocations: revocations,
		logger:      logger,
	}
}

// Login validates the pair and issues a session token.
func (s *Service) Login(email, password string) (string, models.User, error) {
	user, err := s.directory.Authenticate(email, password)
	if err != nil {
		s.logger.Info("login rejected", zap.String("email", email))
		return "", models.User{}, err
	}

	token, _, err := s.codec.Encode(user)
	if err != nil {
		return "", models.User{}, fmt.Errorf("issue session: %w", err)
	}

	s.logger.Info("login succeeded", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return token, user, nil
}

// Restore turns a stored token back into a session.
func (s *Service) Restore(token string) (Session, error) {
	user, claims, err := s.codec.Decode(token)
	if err != nil {
		return Anonymous, err
	}
	if s.revocations.IsRevoked(claims.ID) {
		return Anonymous, fmt.Errorf("%w: revoked", ErrInvalidToken)
	}
	return NewSession(user, claims), nil
}

// Logout revokes the session's token.
func (s *Service) Logout(session Session) error {
	claims := session.Claims()
	if claims == nil {
		return errors.New("no active session")
	}
	expiresAt := s.codec.now().Add(s.codec.ttl)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.revocations.Revoke(claims.ID, expiresAt)
	s.logger.Info("session revoked", zap.String("user_id", claims.Subject))
	return nil
}

// Accounts lists the demo accounts for the login view.
func (s *Service) Accounts() []models.User {
	return s.directory.Accounts()
}

// Revocations exposes the registry for scheduled pruning.
func (s *Service) Revocations() *Revocations {
	return s.revocations
}
