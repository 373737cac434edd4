package service

import (
	"errors"
	"fmt"

	"lingolens/internal/repository"
)

// ErrNotAuthenticated reports a missing or invalid session token. It is a
// soft "not logged in" state, not a failure.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthService resolves session tokens to users
type AuthService struct {
	sessionRepo repository.SessionRepository
	profileRepo repository.ProfileRepository
}

// NewAuthService creates a new auth service
func NewAuthService(sessionRepo repository.SessionRepository, profileRepo repository.ProfileRepository) *AuthService {
	return &AuthService{
		sessionRepo: sessionRepo,
		profileRepo: profileRepo,
	}
}

// Authenticate resolves a bearer token to a user id and makes sure the user
// has a progression profile. First login creates the profile.
func (s *AuthService) Authenticate(token string) (int64, error) {
	if token == "" {
		return 0, ErrNotAuthenticated
	}

	userID, err := s.sessionRepo.UserIDByToken(token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrNotAuthenticated
		}
		return 0, fmt.Errorf("authenticate: %w", err)
	}

	if err := s.profileRepo.EnsureProfile(userID); err != nil {
		return 0, fmt.Errorf("authenticate: %w", err)
	}

	return userID, nil
}
