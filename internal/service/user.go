package service

import (
	"context"
	"log/slog"

	"github.com/sakif/blog-api/internal/model"
	"github.com/sakif/blog-api/internal/repository"
)

// UserService handles user accounts. GetByID, GetAll and Delete come from
// the embedded records; deleting a user cascades to their posts and comments.
type UserService struct {
	*records[model.User]
}

// NewUserService creates a UserService.
func NewUserService(users repository.Gateway[model.User], logger *slog.Logger) *UserService {
	return &UserService{
		records: &records[model.User]{gateway: users, resource: "user", logger: logger},
	}
}

// Create registers a new user. Blank fields fail with apperror.ErrValidation;
// a taken username or email comes back from storage as apperror.ErrConflict.
func (s *UserService) Create(ctx context.Context, username, email string) (model.User, error) {
	if err := requireText("username", username, "email", email); err != nil {
		return model.User{}, err
	}

	user, err := s.create(ctx, model.NewUser(username, email))
	if err != nil {
		return user, err
	}

	s.logger.Info("user created",
		slog.Int64("id", user.ID),
		slog.String("username", user.Username),
	)
	return user, nil
}
