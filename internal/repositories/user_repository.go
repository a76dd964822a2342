package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"shesafeBack/internal/models"
)

// UserRepository handles persistence for user profiles.
type UserRepository struct {
	DB *sql.DB
}

// GetUserByID returns the full profile row.
func (r *UserRepository) GetUserByID(ctx context.Context, userID int) (models.User, error) {
	var user models.User
	var mode sql.NullString
	var custom sql.NullString
	query := `SELECT id, name, phone, email, safety_mode, custom_message, created_at FROM users WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&user.ID, &user.Name, &user.Phone, &user.Email, &mode, &custom, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, models.ErrUserNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	if mode.Valid {
		user.SafetyMode = models.SafetyMode(mode.String)
	} else {
		user.SafetyMode = models.SafetyModeNone
	}
	if custom.Valid {
		user.CustomMessage = custom.String
	}
	return user, nil
}

// GetPhoneByID returns the user's phone identifier.
func (r *UserRepository) GetPhoneByID(ctx context.Context, userID int) (string, error) {
	var phone sql.NullString
	query := `SELECT phone FROM users WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&phone)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if !phone.Valid || phone.String == "" {
		return "", models.ErrNoIdentifier
	}
	return phone.String, nil
}

// UpdateSafetyPreference stores the safety mode and custom message.
func (r *UserRepository) UpdateSafetyPreference(ctx context.Context, userID int, pref models.SafetyPreference) error {
	query := `UPDATE users SET safety_mode = ?, custom_message = ?, updated_at = ? WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, string(pref.Mode), pref.CustomMessage, time.Now(), userID)
	return err
}

// SetPINHash stores the bcrypt hash of the safety PIN.
func (r *UserRepository) SetPINHash(ctx context.Context, userID int, hash string) error {
	query := `UPDATE users SET pin_hash = ?, updated_at = ? WHERE id = ?`
	_, err := r.DB.ExecContext(ctx, query, hash, time.Now(), userID)
	return err
}

// GetPINHash returns the stored safety PIN hash.
func (r *UserRepository) GetPINHash(ctx context.Context, userID int) (string, error) {
	var hash sql.NullString
	query := `SELECT pin_hash FROM users WHERE id = ?`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", models.ErrUserNotFound
	}
	if err != nil {
		return "", err
	}
	if !hash.Valid {
		return "", models.ErrNoRecord
	}
	return hash.String, nil
}

// InsertToken stores an FCM device token for a user.
func (r *UserRepository) InsertToken(ctx context.Context, userID int, token string) error {
	query := `INSERT INTO notify_tokens (user_id, token) VALUES (?, ?)`
	_, err := r.DB.ExecContext(ctx, query, userID, token)
	return err
}

// GetTokensByUserID lists every FCM token registered for a user.
func (r *UserRepository) GetTokensByUserID(ctx context.Context, userID int) ([]string, error) {
	query := `SELECT token FROM notify_tokens WHERE user_id = ?`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var token string
		if err := rows.Scan(&token); err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tokens, nil
}

// DeleteToken removes an FCM token.
func (r *UserRepository) DeleteToken(ctx context.Context, token string) error {
	query := `DELETE FROM notify_tokens WHERE token = ?`
	_, err := r.DB.ExecContext(ctx, query, token)
	return err
}
