package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/saudecerta/storefront/internal/database"
	"github.com/saudecerta/storefront/internal/models"
)

// CreateReview stores a customer review awaiting admin approval.
func CreateReview(ctx context.Context, db *sql.DB, userID int64, rating int, comment string) (*models.Review, error) {
	review := &models.Review{}

	query := `
		INSERT INTO reviews (user_id, rating, comment, approved, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, NOW(), NOW())
		RETURNING id, user_id, rating, comment, approved, created_at, updated_at`

	err := db.QueryRowContext(ctx, query, userID, rating, comment).Scan(
		&review.ID,
		&review.UserID,
		&review.Rating,
		&review.Comment,
		&review.Approved,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	return review, nil
}

func ListApprovedReviews(ctx context.Context, db *sql.DB) ([]models.Review, error) {
	query := `
		SELECT id, user_id, rating, comment, approved, created_at, updated_at
		FROM reviews
		WHERE approved
		ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		err := rows.Scan(&r.ID, &r.UserID, &r.Rating, &r.Comment, &r.Approved, &r.CreatedAt, &r.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return reviews, nil
}

func ApproveReview(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx,
		`UPDATE reviews SET approved = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("approve review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrReviewNotFound
	}

	return nil
}

func DeleteReview(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM reviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrReviewNotFound
	}

	return nil
}
