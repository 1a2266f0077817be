package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/ericfisherdev/academia/internal/domain/model"
	"github.com/ericfisherdev/academia/internal/domain/port/driven"
)

// usernameRules are the validator tags applied to a trimmed username.
const usernameRules = "required,max=255"

// AccountService handles signup and login against the stored account list.
// The first account ever registered is the admin.
type AccountService struct {
	users    driven.UserStore
	validate *validator.Validate
	logger   *slog.Logger

	// mu serializes the load-check-append-save sequence of Register.
	mu sync.Mutex
}

// NewAccountService creates an AccountService backed by users.
func NewAccountService(users driven.UserStore, logger *slog.Logger) *AccountService {
	return &AccountService{
		users:    users,
		validate: validator.New(),
		logger:   logger,
	}
}

// Register creates an account. All validation problems are reported together
// in a *model.ValidationError before the uniqueness check; a taken username
// yields model.ErrConflict and leaves the store unchanged.
func (s *AccountService) Register(ctx context.Context, username, password, confirmation string) (model.User, error) {
	username = strings.TrimSpace(username)

	problems := s.usernameProblems(username)
	problems = append(problems, PasswordProblems(password)...)
	if password != confirmation {
		problems = append(problems, "passwords do not match")
	}
	if len(problems) > 0 {
		return model.User{}, model.NewValidationError(problems...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.LoadUsers(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		if u.Username == username {
			return model.User{}, fmt.Errorf("%q is already registered: %w", username, model.ErrConflict)
		}
	}

	user := model.User{
		Username: username,
		Password: password,
		IsAdmin:  len(users) == 0,
	}
	if err := s.users.SaveUsers(ctx, append(users, user)); err != nil {
		return model.User{}, fmt.Errorf("save users: %w", err)
	}

	s.logger.Info("account registered", "username", username, "admin", user.IsAdmin)
	return user, nil
}

// Login returns the account matching username and password. Unknown users
// and wrong passwords both yield model.ErrUnauthorized.
func (s *AccountService) Login(ctx context.Context, username, password string) (model.User, error) {
	username = strings.TrimSpace(username)

	problems := s.usernameProblems(username)
	if password == "" {
		problems = append(problems, "password is required")
	}
	if len(problems) > 0 {
		return model.User{}, model.NewValidationError(problems...)
	}

	users, err := s.users.LoadUsers(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("load users: %w", err)
	}

	for _, u := range users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}

	s.logger.Warn("login rejected", "username", username)
	return model.User{}, fmt.Errorf("invalid username or password: %w", model.ErrUnauthorized)
}

func (s *AccountService) usernameProblems(username string) []string {
	err := s.validate.Var(username, usernameRules)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{"invalid username"}
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			problems = append(problems, "username is required")
		case "max":
			problems = append(problems, "username is too long")
		default:
			problems = append(problems, "invalid username")
		}
	}
	return problems
}
