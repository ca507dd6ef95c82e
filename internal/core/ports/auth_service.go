package ports

import (
	"context"

	"github.com/taskly/task-system/internal/core/domain"
)

// SignUpInput carries all data needed to register a new account.
// Role is optional; when empty the service defaults it to USER.
type SignUpInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            domain.Role
}

// AuthService implements account registration, login, and identity lookup.
type AuthService interface {
	SignUp(ctx context.Context, in SignUpInput) (*domain.User, error)
	// Login returns an access token on success. Unknown email and wrong
	// password are indistinguishable to the caller.
	Login(ctx context.Context, email, password string) (string, error)
	// CurrentUser returns the user with the password hash blanked.
	CurrentUser(ctx context.Context, id string) (*domain.User, error)
}
