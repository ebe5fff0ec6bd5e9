package db

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SeedData populates the database with a pair of demo users, one published
// post with a comment, and one draft. Intended for local development only.
func SeedData(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error hashing demo password: %w", err)
	}

	users := []struct {
		username, email, first, last string
	}{
		{"alice", "alice@example.com", "Alice", "Author"},
		{"bob", "bob@example.com", "Bob", "Reader"},
	}
	for _, u := range users {
		_, err = tx.Exec(
			`INSERT INTO users (username, email, first_name, last_name, password_hash)
			 VALUES ($1, $2, $3, $4, $5) ON CONFLICT DO NOTHING`,
			u.username, u.email, u.first, u.last, string(hash),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding users: %w", err)
		}
	}

	var aliceID int
	if err = tx.QueryRow(`SELECT user_id FROM users WHERE username = 'alice'`).Scan(&aliceID); err != nil {
		tx.Rollback()
		return fmt.Errorf("error looking up seed user: %w", err)
	}

	var postCount int
	if err = tx.QueryRow(`SELECT COUNT(*) FROM posts WHERE user_id = $1`, aliceID).Scan(&postCount); err != nil {
		tx.Rollback()
		return fmt.Errorf("error counting seed posts: %w", err)
	}

	if postCount == 0 {
		var postID int
		err = tx.QueryRow(
			`INSERT INTO posts (title, body, is_published, user_id)
			 VALUES ('Hello', 'Welcome to the blog.', true, $1) RETURNING post_id`,
			aliceID,
		).Scan(&postID)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding posts: %w", err)
		}

		_, err = tx.Exec(
			`INSERT INTO posts (title, body, is_published, user_id)
			 VALUES ('Draft notes', 'Not ready yet.', false, $1)`,
			aliceID,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding posts: %w", err)
		}

		var bobID int
		if err = tx.QueryRow(`SELECT user_id FROM users WHERE username = 'bob'`).Scan(&bobID); err != nil {
			tx.Rollback()
			return fmt.Errorf("error looking up seed user: %w", err)
		}
		_, err = tx.Exec(
			`INSERT INTO comments (title, text, user_id, post_id)
			 VALUES ('Hi', 'Nice post!', $1, $2)`,
			bobID, postID,
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("error seeding comments: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}
