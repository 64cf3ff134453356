package repository

import (
	"context"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/kv"
	"github.com/ikkim/jewel-storefront/pkg/logger"
)

// UserRepository holds a session's accounts and its signed-in user
type UserRepository interface {
	FindAll(ctx context.Context, sessionID string) ([]model.User, error)
	SaveAll(ctx context.Context, sessionID string, users []model.User) error
	FindByCredentials(ctx context.Context, sessionID, email, password string) (*model.User, error)
	Current(ctx context.Context, sessionID string) (*model.User, error)
	SetCurrent(ctx context.Context, sessionID string, user model.User) error
	ClearCurrent(ctx context.Context, sessionID string) error
}

type userRepository struct {
	store kv.Store
}

func NewUserRepository(store kv.Store) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) FindAll(ctx context.Context, sessionID string) ([]model.User, error) {
	users, err := loadList[model.User](ctx, r.store, sessionID, kv.KeyUsers)
	if err != nil {
		logger.Error("Failed to read users from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return users, nil
}

func (r *userRepository) SaveAll(ctx context.Context, sessionID string, users []model.User) error {
	if users == nil {
		users = []model.User{}
	}
	if err := save(ctx, r.store, sessionID, kv.KeyUsers, users); err != nil {
		logger.Error("Failed to write users to store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}

// FindByCredentials scans for an exact email and password match.
// nil, nil when nothing matches.
func (r *userRepository) FindByCredentials(ctx context.Context, sessionID, email, password string) (*model.User, error) {
	users, err := r.FindAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Current(ctx context.Context, sessionID string) (*model.User, error) {
	user, err := loadOne[model.User](ctx, r.store, sessionID, kv.KeyUser)
	if err != nil {
		logger.Error("Failed to read current user from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return user, nil
}

func (r *userRepository) SetCurrent(ctx context.Context, sessionID string, user model.User) error {
	if err := save(ctx, r.store, sessionID, kv.KeyUser, user); err != nil {
		logger.Error("Failed to write current user to store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}

func (r *userRepository) ClearCurrent(ctx context.Context, sessionID string) error {
	if err := remove(ctx, r.store, sessionID, kv.KeyUser); err != nil {
		logger.Error("Failed to remove current user from store", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return err
	}
	return nil
}
