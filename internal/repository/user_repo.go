package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecommerce_service/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	userColumns          = `id, name, password_hash, created_at, updated_at`
	duplicateNameMessage = "Name is already taken."
)

type postgresUserRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresUserRepository(db *sql.DB, logger *logrus.Logger) domain.UserRepository {
	return &postgresUserRepository{
		db:  db,
		log: logger,
	}
}

func scanUser(row scanner) (*domain.User, error) {
	user := &domain.User{}
	if err := row.Scan(&user.ID, &user.Name, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *postgresUserRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	user.ID = uuid.NewString()
	query := `
        INSERT INTO users (id, name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRowContext(ctx, query, user.ID, user.Name, user.PasswordHash))
	if err != nil {
		if domainErr := translateWriteError(err, duplicateNameMessage); domainErr != nil {
			r.log.Warnf("Repository: Rejected user '%s': %v", user.Name, err)
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to create user '%s': %v", user.Name, err)
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	r.log.Infof("Repository: User created successfully with ID: %s", created.ID)
	return created, nil
}

func (r *postgresUserRepository) GetUserByName(ctx context.Context, name string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE name = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewNotFoundError("User not found.")
		}
		r.log.Errorf("Repository: Failed to get user by name: %v", err)
		return nil, fmt.Errorf("could not get user by name: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with ID %s not found", id)
			return nil, domain.NewNotFoundError("User not found.")
		}
		r.log.Errorf("Repository: Failed to get user by ID %s: %v", id, err)
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}
	return user, nil
}

func (r *postgresUserRepository) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        UPDATE users SET name = $1, password_hash = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING ` + userColumns
	updated, err := scanUser(r.db.QueryRowContext(ctx, query, user.Name, user.PasswordHash, user.ID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Repository: User with ID %s not found for update", user.ID)
			return nil, domain.NewNotFoundError("User not found.")
		}
		if domainErr := translateWriteError(err, duplicateNameMessage); domainErr != nil {
			return nil, domainErr
		}
		r.log.Errorf("Repository: Failed to update user ID %s: %v", user.ID, err)
		return nil, fmt.Errorf("could not update user: %w", err)
	}
	r.log.Infof("Repository: User updated successfully with ID: %s", user.ID)
	return updated, nil
}

func (r *postgresUserRepository) DeleteUser(ctx context.Context, id string) error {
	rowsAffected, err := deleteByID(ctx, r.db, "users", id)
	if err != nil {
		r.log.Errorf("Repository: Failed to delete user ID %s: %v", id, err)
		return fmt.Errorf("could not delete user: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewNotFoundError("User not found.")
	}
	r.log.Infof("Repository: User deleted successfully with ID: %s", id)
	return nil
}

func (r *postgresUserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC, id ASC`)
	if err != nil {
		r.log.Errorf("Repository: Failed to list users: %v", err)
		return nil, fmt.Errorf("could not list users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning user data: %w", err)
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
