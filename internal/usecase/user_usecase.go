package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ecommerce_service/internal/domain"

	"github.com/sirupsen/logrus"
)

const invalidCredentialsMessage = "Invalid name or password."

type UserUseCase interface {
	Register(ctx context.Context, name, password string) error
	Login(ctx context.Context, name, password string) (*domain.AuthResponse, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	UpdateUser(ctx context.Context, id, name, password string) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type userUseCase struct {
	userRepo domain.UserRepository
	hasher   domain.PasswordHasher
	tokens   domain.TokenIssuer
	log      *logrus.Logger

	// dummyHash is compared against on unknown names so both login failures cost one hash check.
	dummyOnce sync.Once
	dummyHash string
}

func NewUserUseCase(repo domain.UserRepository, hasher domain.PasswordHasher, tokens domain.TokenIssuer, logger *logrus.Logger) UserUseCase {
	return &userUseCase{
		userRepo: repo,
		hasher:   hasher,
		tokens:   tokens,
		log:      logger,
	}
}

func (uc *userUseCase) Register(ctx context.Context, name, password string) error {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		uc.log.Warn("Use Case: Registration attempt with missing name or password")
		return domain.NewValidationError("Name and password are required.")
	}

	_, err := uc.userRepo.GetUserByName(ctx, name)
	switch {
	case err == nil:
		uc.log.Warnf("Use Case: Registration attempt with taken name '%s'", name)
		return domain.NewConflictError("Name is already taken.")
	case !errors.Is(err, domain.ErrNotFound):
		return err
	}

	hash, err := uc.hashPassword(password)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to hash password for '%s': %v", name, err)
		return err
	}

	// The unique index still rejects a concurrent registration of the same name.
	created, err := uc.userRepo.CreateUser(ctx, &domain.User{Name: name, PasswordHash: hash})
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create user '%s': %v", name, err)
		return err
	}

	uc.log.Infof("Use Case: User registered successfully with ID %s", created.ID)
	return nil
}

// Login answers an unknown name and a wrong password with the same error.
func (uc *userUseCase) Login(ctx context.Context, name, password string) (*domain.AuthResponse, error) {
	user, err := uc.userRepo.GetUserByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			uc.hasher.Verify(uc.loginDummyHash(), password)
			uc.log.Warn("Use Case: Login failed: invalid credentials")
			return nil, domain.NewUnauthorizedError(invalidCredentialsMessage)
		}
		return nil, err
	}

	if !uc.hasher.Verify(user.PasswordHash, password) {
		uc.log.Warn("Use Case: Login failed: invalid credentials")
		return nil, domain.NewUnauthorizedError(invalidCredentialsMessage)
	}

	token, err := uc.tokens.Issue(user.ID)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to issue token for user ID %s: %v", user.ID, err)
		return nil, fmt.Errorf("could not issue token: %w", err)
	}

	uc.log.Infof("Use Case: User ID %s logged in", user.ID)
	return &domain.AuthResponse{Token: token, User: user}, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := uc.userRepo.ListUsers(ctx)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list users: %v", err)
		return nil, fmt.Errorf("could not retrieve users: %w", err)
	}
	return users, nil
}

func (uc *userUseCase) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return uc.userRepo.GetUserByID(ctx, id)
}

// UpdateUser replaces both name and password.
func (uc *userUseCase) UpdateUser(ctx context.Context, id, name, password string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		uc.log.Warnf("Use Case: Update of user ID %s with missing name or password", id)
		return nil, domain.NewValidationError("Name and password are required.")
	}

	user, err := uc.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	hash, err := uc.hashPassword(password)
	if err != nil {
		uc.log.Warnf("Use Case: Failed to hash password for user ID %s: %v", id, err)
		return nil, err
	}
	user.Name = name
	user.PasswordHash = hash

	updated, err := uc.userRepo.UpdateUser(ctx, user)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update user ID %s: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: User updated successfully for ID %s", id)
	return updated, nil
}

func (uc *userUseCase) DeleteUser(ctx context.Context, id string) error {
	if err := uc.userRepo.DeleteUser(ctx, id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete user ID %s: %v", id, err)
		return err
	}
	uc.log.Infof("Use Case: User deleted successfully for ID %s", id)
	return nil
}

// hashPassword passes validation errors from the hasher through unchanged.
func (uc *userUseCase) hashPassword(password string) (string, error) {
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return "", err
		}
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return hash, nil
}

func (uc *userUseCase) loginDummyHash() string {
	uc.dummyOnce.Do(func() {
		hash, err := uc.hasher.Hash("login-timing-placeholder")
		if err != nil {
			uc.log.Errorf("Use Case: Failed to prepare placeholder hash: %v", err)
			return
		}
		uc.dummyHash = hash
	})
	return uc.dummyHash
}
