package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/sunvolt-erp/sunvolt/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo   Repository
	tokens *shared.TokenManager
}

func NewService(repo Repository, tokens *shared.TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Login validates phone/password credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, phone, password string) (*Agent, string, error) {
	agent, err := s.repo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}
	if !agent.IsActive {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(agent.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, agent.ID, agent.Phone, agent.Role)
	if err != nil {
		return nil, "", err
	}
	return agent, token, nil
}

// Logout revokes the presented token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.tokens.Revoke(ctx, token)
}

// Me returns the full agent record for an authenticated identity.
func (s *Service) Me(ctx context.Context, agentID int64) (*Agent, error) {
	return s.repo.FindByID(ctx, agentID)
}

// PhoneExists reports whether a phone number is already registered. Used by
// the client while the user types their number.
func (s *Service) PhoneExists(ctx context.Context, phone string) (bool, error) {
	return s.repo.PhoneExists(ctx, phone)
}

// UpdateAvatar stores a new profile picture URL for the agent.
func (s *Service) UpdateAvatar(ctx context.Context, agentID int64, avatarURL string) (*Agent, error) {
	if err := s.repo.UpdateAvatar(ctx, agentID, avatarURL); err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, agentID)
}
