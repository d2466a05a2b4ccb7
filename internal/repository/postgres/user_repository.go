package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meetsync/meetsync/internal/model"
	"github.com/meetsync/meetsync/internal/repository"
)

type UserRepository struct {
	base
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{base{pool: pool}}
}

// Create inserts a new user profile.
func (r *UserRepository) Create(ctx context.Context, user *model.UserProfile) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.pool.QueryRow(
		ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.PhotoURL,
	).Scan(&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

// GetByID fetches a user profile with availability. Returns nil when absent.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.UserProfile, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

// GetByEmail fetches a user profile by email. Returns nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.UserProfile, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*model.UserProfile, error) {
	query := `
		SELECT id, name, email, password_hash, photo_url, created_at, updated_at
		FROM users ` + where

	var user model.UserProfile
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.PhotoURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	rules, err := r.GetAvailability(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Availability = rules

	return &user, nil
}

// UpdateProfile updates the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name, photoURL string) error {
	tag, err := r.pool.Exec(
		ctx,
		`UPDATE users SET name = $2, photo_url = $3, updated_at = now() WHERE id = $1`,
		id, name, photoURL,
	)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// GetAvailability loads the user's weekly rule set ordered by weekday.
func (r *UserRepository) GetAvailability(ctx context.Context, userID string) ([]model.AvailabilityRule, error) {
	query := `
		SELECT weekday, enabled, windows
		FROM availability_rules
		WHERE user_id = $1
		ORDER BY weekday
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get availability: %w", err)
	}
	defer rows.Close()

	var rules []model.AvailabilityRule
	for rows.Next() {
		var rule model.AvailabilityRule
		if err := rows.Scan(&rule.Weekday, &rule.Enabled, &rule.Windows); err != nil {
			return nil, fmt.Errorf("scan availability rule: %w", err)
		}
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate availability rules: %w", err)
	}

	return rules, nil
}

// SaveAvailability replaces the user's whole weekly rule set in one
// transaction, so readers never observe a partial week.
func (r *UserRepository) SaveAvailability(ctx context.Context, userID string, rules []model.AvailabilityRule) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM availability_rules WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("clear availability: %w", err)
	}

	for _, rule := range rules {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO availability_rules (user_id, weekday, enabled, windows) VALUES ($1, $2, $3, $4)`,
			userID, rule.Weekday, rule.Enabled, rule.Windows,
		)
		if err != nil {
			return fmt.Errorf("insert availability rule: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE users SET updated_at = now() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("touch user: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
