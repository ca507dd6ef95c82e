package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/taskly/task-system/internal/core/domain"
	"github.com/taskly/task-system/internal/core/ports"
)

// AuthService implements sign-up, login, and current-user.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenService, logger zerolog.Logger) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens, logger: logger}
}

// SignUp validates the confirmation password and email uniqueness, hashes
// the password, and persists the account. The repository is never called
// once a validation has failed.
func (s *AuthService) SignUp(ctx context.Context, in ports.SignUpInput) (*domain.User, error) {
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account created")
	return created, nil
}

// Login authenticates by email and password and returns an access token.
// Unknown email and wrong password collapse into the same error so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Compare(password, user.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("login succeeded")
	return token, nil
}

// CurrentUser returns the user projection with the password hash blanked.
// The redaction happens here, not in transport serialization.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	redacted := *user
	redacted.PasswordHash = ""
	return &redacted, nil
}
