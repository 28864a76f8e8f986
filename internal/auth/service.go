package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=auth
type Repository interface {
	// GetUserByEmail returns nil and no error when no user has that email.
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Authorize checks c against the stored user. A rejected login returns a nil user and no error;
// the error is reserved for a failing lookup.
func (s *Service) Authorize(ctx context.Context, c Credentials) (*User, error) {
	if err := s.validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			slog.Debug("rejected malformed credentials", "fields", len(verrs))
			return nil, nil
		}

		return nil, fmt.Errorf("validating credentials: %w", err)
	}

	user, err := s.repo.GetUserByEmail(ctx, c.Email)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if user == nil {
		return nil, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(c.Password)); err != nil {
		return nil, nil
	}

	return user, nil
}

// SignIn is Authorize with rejections and lookup failures reported as *Error.
func (s *Service) SignIn(ctx context.Context, c Credentials) (*User, error) {
	user, err := s.Authorize(ctx, c)
	if err != nil {
		return nil, &Error{Type: CallbackRouteError, Err: err}
	}

	if user == nil {
		return nil, &Error{Type: CredentialsSignin}
	}

	return user, nil
}
