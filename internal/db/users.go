package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// User is the internal record of an authenticated identity. The table
// is the stable user-identifier mapping behind the external identity
// provider.
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	GoogleID  string
	Picture   string
	CreatedAt time.Time
}

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// GetUserByEmail looks a user up by email address.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (User, error) {
	var u User
	err := db.Pool.QueryRow(ctx,
		`SELECT id, email, name, google_id, picture, created_at FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.Name, &u.GoogleID, &u.Picture, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// CreateUser inserts a new user record and returns it.
func (db *DB) CreateUser(ctx context.Context, email, name, googleID, picture string) (User, error) {
	u := User{
		ID:       uuid.New(),
		Email:    email,
		Name:     name,
		GoogleID: googleID,
		Picture:  picture,
	}
	err := db.Pool.QueryRow(ctx,
		`INSERT INTO users (id, email, name, google_id, picture)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		u.ID, u.Email, u.Name, u.GoogleID, u.Picture,
	).Scan(&u.CreatedAt)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return u, nil
}
