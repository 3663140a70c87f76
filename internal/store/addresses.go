package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
)

func CreateAddress(ctx context.Context, db *sql.DB, addr models.Address) (*models.Address, error) {
	created := &models.Address{}

	query := `
		INSERT INTO user_addresses (user_id, street, number, complement, city, state, zip_code, is_default, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
		RETURNING id, user_id, street, number, complement, city, state, zip_code, is_default, created_at`

	err := db.QueryRowContext(ctx, query,
		addr.UserID, addr.Street, addr.Number, addr.Complement,
		addr.City, addr.State, addr.ZipCode, addr.IsDefault).Scan(
		&created.ID,
		&created.UserID,
		&created.Street,
		&created.Number,
		&created.Complement,
		&created.City,
		&created.State,
		&created.ZipCode,
		&created.IsDefault,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create address: %w", err)
	}

	return created, nil
}

// GetAddress resolves an address only if it belongs to userID. The
// checkout flow relies on this ownership check before snapshotting the
// address into the confirmation message.
func GetAddress(ctx context.Context, db *sql.DB, id, userID int64) (*models.Address, error) {
	addr := &models.Address{}

	query := `
		SELECT id, user_id, street, number, complement, city, state, zip_code, is_default, created_at
		FROM user_addresses
		WHERE id = $1 AND user_id = $2`

	err := db.QueryRowContext(ctx, query, id, userID).Scan(
		&addr.ID,
		&addr.UserID,
		&addr.Street,
		&addr.Number,
		&addr.Complement,
		&addr.City,
		&addr.State,
		&addr.ZipCode,
		&addr.IsDefault,
		&addr.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrAddressNotFound
		}
		return nil, fmt.Errorf("get address: %w", err)
	}

	return addr, nil
}

func ListAddresses(ctx context.Context, db *sql.DB, userID int64) ([]models.Address, error) {
	query := `
		SELECT id, user_id, street, number, complement, city, state, zip_code, is_default, created_at
		FROM user_addresses
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	defer rows.Close()

	var addresses []models.Address
	for rows.Next() {
		var addr models.Address
		err := rows.Scan(
			&addr.ID,
			&addr.UserID,
			&addr.Street,
			&addr.Number,
			&addr.Complement,
			&addr.City,
			&addr.State,
			&addr.ZipCode,
			&addr.IsDefault,
			&addr.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan address: %w", err)
		}
		addresses = append(addresses, addr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return addresses, nil
}

func UpdateAddress(ctx context.Context, db *sql.DB, addr models.Address) error {
	result, err := db.ExecContext(ctx,
		`UPDATE user_addresses
		 SET street = $1, number = $2, complement = $3, city = $4, state = $5, zip_code = $6, is_default = $7
		 WHERE id = $8 AND user_id = $9`,
		addr.Street, addr.Number, addr.Complement, addr.City, addr.State,
		addr.ZipCode, addr.IsDefault, addr.ID, addr.UserID)
	if err != nil {
		return fmt.Errorf("update address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrAddressNotFound
	}

	return nil
}

func DeleteAddress(ctx context.Context, db *sql.DB, id, userID int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM user_addresses WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete address: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrAddressNotFound
	}

	return nil
}

func CreatePhone(ctx context.Context, db *sql.DB, phone models.Phone) (*models.Phone, error) {
	created := &models.Phone{}

	query := `
		INSERT INTO user_phones (user_id, phone, is_default, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, user_id, phone, is_default, created_at`

	err := db.QueryRowContext(ctx, query, phone.UserID, phone.Phone, phone.IsDefault).Scan(
		&created.ID,
		&created.UserID,
		&created.Phone,
		&created.IsDefault,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create phone: %w", err)
	}

	return created, nil
}

func ListPhones(ctx context.Context, db *sql.DB, userID int64) ([]models.Phone, error) {
	query := `
		SELECT id, user_id, phone, is_default, created_at
		FROM user_phones
		WHERE user_id = $1
		ORDER BY is_default DESC, created_at DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list phones: %w", err)
	}
	defer rows.Close()

	var phones []models.Phone
	for rows.Next() {
		var p models.Phone
		if err := rows.Scan(&p.ID, &p.UserID, &p.Phone, &p.IsDefault, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan phone: %w", err)
		}
		phones = append(phones, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return phones, nil
}

func UpdatePhone(ctx context.Context, db *sql.DB, phone models.Phone) error {
	result, err := db.ExecContext(ctx,
		`UPDATE user_phones SET phone = $1, is_default = $2 WHERE id = $3 AND user_id = $4`,
		phone.Phone, phone.IsDefault, phone.ID, phone.UserID)
	if err != nil {
		return fmt.Errorf("update phone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrPhoneNotFound
	}

	return nil
}

func DeletePhone(ctx context.Context, db *sql.DB, id, userID int64) error {
	result, err := db.ExecContext(ctx,
		`DELETE FROM user_phones WHERE id = $1 AND user_id = $2`,
		id, userID)
	if err != nil {
		return fmt.Errorf("delete phone: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrPhoneNotFound
	}

	return nil
}
