package service

import (
	"context"
	"strings"
	"time"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/events"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

// AuthConfig holds the simulated sign-in delay
type AuthConfig struct {
	LoginDelay time.Duration
}

// AuthService signs users in against the accounts stored in the session.
// Passwords are compared as entered.
type AuthService interface {
	Signup(ctx context.Context, sessionID string, user model.User) (*model.User, error)
	Login(ctx context.Context, sessionID, email, password string) (*model.User, error)
	Logout(ctx context.Context, sessionID string) error
	CurrentUser(ctx context.Context, sessionID string) (*model.User, error)
	// CustomerCount is the number of stored accounts
	CustomerCount(ctx context.Context, sessionID string) (int, error)
}

type authService struct {
	userRepo repository.UserRepository
	notify   notifier
	config   AuthConfig
}

func NewAuthService(userRepo repository.UserRepository, broker events.Broker, config AuthConfig) AuthService {
	return &authService{
		userRepo: userRepo,
		notify:   notifier{broker: broker},
		config:   config,
	}
}

func (s *authService) Signup(ctx context.Context, sessionID string, user model.User) (*model.User, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Name == "" {
		user.Name = user.DisplayName()
	}
	if err := user.Validate(); err != nil {
		return nil, ErrInvalidSignup
	}

	logger.Info("Attempting to register new user", map[string]interface{}{
		"session_id": sessionID,
		"email":      user.Email,
	})

	users, err := s.userRepo.FindAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for _, existing := range users {
		if strings.EqualFold(existing.Email, user.Email) {
			logger.Warn("Registration failed: email already exists", map[string]interface{}{
				"session_id": sessionID,
				"email":      user.Email,
			})
			return nil, ErrEmailAlreadyExists
		}
	}

	users = append(users, user)
	if err := s.userRepo.SaveAll(ctx, sessionID, users); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, sessionID, kv.KeyUsers)

	if err := s.userRepo.SetCurrent(ctx, sessionID, user); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, sessionID, kv.KeyUser)

	logger.Info("User registered successfully", map[string]interface{}{
		"session_id": sessionID,
		"email":      user.Email,
	})
	return &user, nil
}

// Login waits out the sign-in delay and then looks for an exact
// email and password match
func (s *authService) Login(ctx context.Context, sessionID, email, password string) (*model.User, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"session_id": sessionID,
		"email":      email,
	})

	if err := wait(ctx, s.config.LoginDelay); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByCredentials(ctx, sessionID, email, password)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logger.Warn("Login failed: invalid credentials", map[string]interface{}{
			"session_id": sessionID,
			"email":      email,
		})
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.SetCurrent(ctx, sessionID, *user); err != nil {
		return nil, err
	}
	s.notify.changed(ctx, sessionID, kv.KeyUser)

	logger.Info("User logged in successfully", map[string]interface{}{
		"session_id": sessionID,
		"email":      user.Email,
	})
	return user, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	if err := s.userRepo.ClearCurrent(ctx, sessionID); err != nil {
		return err
	}
	s.notify.changed(ctx, sessionID, kv.KeyUser)

	logger.Info("User logged out", map[string]interface{}{
		"session_id": sessionID,
	})
	return nil
}

func (s *authService) CurrentUser(ctx context.Context, sessionID string) (*model.User, error) {
	return s.userRepo.Current(ctx, sessionID)
}

func (s *authService) CustomerCount(ctx context.Context, sessionID string) (int, error) {
	users, err := s.userRepo.FindAll(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}
