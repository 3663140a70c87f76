package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
)

func CreateUser(ctx context.Context, db *sql.DB, openID, email, name string) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (open_id, email, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, 'user', NOW(), NOW())
		RETURNING id, open_id, email, name, role, phone, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, openID, email, name).Scan(
		&user.ID,
		&user.OpenID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// UpsertUserByOpenID records a login: the first one creates the user,
// later ones refresh name and email from the identity provider.
func UpsertUserByOpenID(ctx context.Context, db *sql.DB, openID, email, name string) (*models.User, error) {
	user := &models.User{}

	query := `
		INSERT INTO users (open_id, email, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, 'user', NOW(), NOW())
		ON CONFLICT (open_id) DO UPDATE
		SET email = EXCLUDED.email,
		    name = EXCLUDED.name,
		    updated_at = NOW()
		RETURNING id, open_id, email, name, role, phone, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, openID, email, name).Scan(
		&user.ID,
		&user.OpenID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	return user, nil
}

func GetUser(ctx context.Context, db *sql.DB, id int64) (*models.User, error) {
	user := &models.User{}

	query := `
		SELECT id, open_id, email, name, role, phone, created_at, updated_at
		FROM users
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.OpenID,
		&user.Email,
		&user.Name,
		&user.Role,
		&user.Phone,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func SetUserPhone(ctx context.Context, db *sql.DB, id int64, phone string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE users SET phone = $1, updated_at = NOW() WHERE id = $2`,
		phone, id)
	if err != nil {
		return fmt.Errorf("set user phone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrUserNotFound
	}

	return nil
}
