package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"blogapp/models"
	"blogapp/store"
)

type PostStore struct {
	db *sql.DB
}

func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const summaryQuery = `
	SELECT
	    posts.post_id,
	    posts.title,
	    posts.body,
	    posts.is_published,
	    posts.date_created,
	    posts.date_updated,
	    COUNT(comments.comment_id) AS comment_count
	FROM
	    posts LEFT JOIN comments ON posts.post_id = comments.post_id
	WHERE
	    posts.is_published = true`

func (s *PostStore) ListPublished(ctx context.Context) ([]models.PostSummary, error) {
	rows, err := s.db.QueryContext(ctx, summaryQuery+`
	GROUP BY posts.post_id
	ORDER BY posts.date_created DESC`)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func (s *PostStore) ListPublishedByOwner(ctx context.Context, ownerID int) ([]models.PostSummary, error) {
	rows, err := s.db.QueryContext(ctx, summaryQuery+` AND posts.user_id = $1
	GROUP BY posts.post_id
	ORDER BY posts.date_created DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error querying posts: %w", err)
	}
	defer rows.Close()

	return scanSummaries(rows)
}

func scanSummaries(rows *sql.Rows) ([]models.PostSummary, error) {
	var posts []models.PostSummary
	for rows.Next() {
		var p models.PostSummary
		err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Body,
			&p.IsPublished,
			&p.DateCreated,
			&p.DateUpdated,
			&p.CommentCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating posts: %w", err)
	}
	return posts, nil
}

func (s *PostStore) Create(ctx context.Context, ownerID int, title, body string, publish bool) (int, error) {
	var postID int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, body, is_published, user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING post_id`,
		title, body, publish, ownerID,
	).Scan(&postID)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}
	return postID, nil
}

func (s *PostStore) GetForOwner(ctx context.Context, postID, ownerID int) (models.Post, error) {
	var p models.Post
	err := s.db.QueryRowContext(ctx,
		`SELECT post_id, title, body, is_published, user_id, date_created, date_updated
		 FROM posts
		 WHERE post_id = $1 AND user_id = $2`,
		postID, ownerID,
	).Scan(&p.ID, &p.Title, &p.Body, &p.IsPublished, &p.UserID, &p.DateCreated, &p.DateUpdated)

	if err == sql.ErrNoRows {
		return models.Post{}, store.ErrNotFound
	} else if err != nil {
		return models.Post{}, fmt.Errorf("error querying post: %w", err)
	}

	return p, nil
}

func (s *PostStore) Update(ctx context.Context, postID, ownerID int, title, body string, publish bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE posts
		 SET title = $1, body = $2, is_published = $3, date_updated = current_timestamp
		 WHERE post_id = $4 AND user_id = $5`,
		title, body, publish, postID, ownerID,
	)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return s.classifyMiss(ctx, postID)
	}
	return nil
}

func (s *PostStore) Delete(ctx context.Context, postID, ownerID int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}

	// Ownership is settled before the comment delete runs, so a non-owner
	// can never clear another post's comment thread.
	var actualOwner int
	err = tx.QueryRowContext(ctx,
		`SELECT user_id FROM posts WHERE post_id = $1`, postID,
	).Scan(&actualOwner)
	if err == sql.ErrNoRows {
		tx.Rollback()
		return store.ErrNotFound
	} else if err != nil {
		tx.Rollback()
		return fmt.Errorf("error querying post owner: %w", err)
	}
	if actualOwner != ownerID {
		tx.Rollback()
		return store.ErrForbidden
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM comments WHERE post_id = $1`, postID,
	); err != nil {
		tx.Rollback()
		return fmt.Errorf("error deleting comments: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM posts WHERE post_id = $1 AND user_id = $2`, postID, ownerID,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("error deleting post: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		tx.Rollback()
		return fmt.Errorf("error reading affected rows: %w", err)
	} else if n == 0 {
		tx.Rollback()
		return store.ErrNotFound
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}
	return nil
}

func (s *PostStore) GetDetail(ctx context.Context, postID, viewerID int) (models.PostDetail, error) {
	var d models.PostDetail
	err := s.db.QueryRowContext(ctx,
		`SELECT
		     posts.post_id,
		     posts.title,
		     posts.body,
		     posts.is_published,
		     posts.user_id,
		     posts.date_created,
		     posts.date_updated,
		     users.username
		 FROM
		     posts JOIN users ON users.user_id = posts.user_id
		 WHERE
		     posts.post_id = $1 AND
		     (posts.is_published = true OR posts.user_id = $2)`,
		postID, viewerID,
	).Scan(
		&d.ID,
		&d.Title,
		&d.Body,
		&d.IsPublished,
		&d.UserID,
		&d.DateCreated,
		&d.DateUpdated,
		&d.Author,
	)

	if err == sql.ErrNoRows {
		return models.PostDetail{}, store.ErrNotFound
	} else if err != nil {
		return models.PostDetail{}, fmt.Errorf("error querying post: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT
		     comments.comment_id,
		     comments.title,
		     comments.text,
		     comments.user_id,
		     users.username
		 FROM
		     comments JOIN users ON users.user_id = comments.user_id
		 WHERE
		     comments.post_id = $1
		 ORDER BY comments.comment_id`,
		postID,
	)
	if err != nil {
		return models.PostDetail{}, fmt.Errorf("error querying comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cv models.CommentView
		if err := rows.Scan(&cv.ID, &cv.Title, &cv.Text, &cv.UserID, &cv.Author); err != nil {
			return models.PostDetail{}, fmt.Errorf("error scanning comment: %w", err)
		}
		d.Comments = append(d.Comments, cv)
	}
	if err := rows.Err(); err != nil {
		return models.PostDetail{}, fmt.Errorf("error iterating comments: %w", err)
	}

	return d, nil
}

// classifyMiss distinguishes a vanished post from somebody else's post
// after a scoped statement touched zero rows.
func (s *PostStore) classifyMiss(ctx context.Context, postID int) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE post_id = $1)`, postID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("error checking post existence: %w", err)
	}
	if exists {
		return store.ErrForbidden
	}
	return store.ErrNotFound
}
