package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"blogapp/models"
	"blogapp/store"
)

// uniqueViolation is the Postgres error code raised when an insert hits a
// UNIQUE constraint (duplicate username or email).
const uniqueViolation = "23505"

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, u models.NewUser) (models.User, error) {
	user := models.User{
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		PasswordHash: u.PasswordHash,
	}

	err := s.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, first_name, last_name, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING user_id`,
		u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash,
	).Scan(&user.ID)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return models.User{}, store.ErrDuplicate
		}
		return models.User{}, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, username, email, first_name, last_name, password_hash
		 FROM users
		 WHERE username = $1`,
		username,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
	)

	if err == sql.ErrNoRows {
		return models.User{}, store.ErrNotFound
	} else if err != nil {
		return models.User{}, fmt.Errorf("error querying user: %w", err)
	}

	return user, nil
}
