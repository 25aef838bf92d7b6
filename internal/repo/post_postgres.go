package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/models"
)

var ErrPostNotFound = errors.New("post not found")

type PostgresPostRepository struct {
	db *sql.DB
}

func NewPostgresPostRepository(db *sql.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

const postSelect = `SELECT p.id, p.user_id, u.username, p.title, COALESCE(p.post_content, ''), p.date_published
	FROM posts p
	JOIN users u ON u.id = p.user_id`

func (r *PostgresPostRepository) Create(p models.Post) (models.Post, error) {
	query := `INSERT INTO posts (user_id, title, post_content) VALUES ($1, $2, $3)
		RETURNING id, date_published`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query, p.UserID, p.Title, p.Content).
		Scan(&p.ID, &p.DatePublished)
	return p, err
}

func (r *PostgresPostRepository) GetByID(id int) (models.Post, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var p models.Post
	err := r.db.QueryRowContext(ctx, postSelect+` WHERE p.id = $1`, id).
		Scan(&p.ID, &p.UserID, &p.Username, &p.Title, &p.Content, &p.DatePublished)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Post{}, ErrPostNotFound
	}
	return p, err
}

func (r *PostgresPostRepository) Update(p models.Post) (models.Post, error) {
	query := `UPDATE posts SET title = $1, post_content = $2 WHERE id = $3`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, p.Title, p.Content, p.ID)
	if err != nil {
		return models.Post{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Post{}, ErrPostNotFound
	}
	return p, nil
}

func (r *PostgresPostRepository) Latest(page, count int) ([]models.Post, int, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}

	f := PostFilter{Page: page, Count: count}
	query := postSelect + ` ORDER BY p.date_published DESC, p.id DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, f.limit(), f.offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	return posts, total, err
}

func (r *PostgresPostRepository) Search(f PostFilter) ([]models.Post, error) {
	conditions, args, argIdx := postFilterConditions(f)

	query := postSelect + ` WHERE 1=1` + conditions
	query += " ORDER BY p.date_published DESC, p.id DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, f.limit(), f.offset())

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectPosts(rows)
}

func postFilterConditions(f PostFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if f.UserID != nil {
		query += fmt.Sprintf(" AND p.user_id = $%d", argIdx)
		args = append(args, *f.UserID)
		argIdx++
	}
	if f.SubscriptionsOf != nil {
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM subscriptions s
			WHERE s.subscriber_id = $%d AND s.subscription_id = p.user_id)`, argIdx)
		args = append(args, *f.SubscriptionsOf)
		argIdx++
	}
	if len(f.Usernames) > 0 {
		query += fmt.Sprintf(" AND u.username = ANY($%d)", argIdx)
		args = append(args, f.Usernames)
		argIdx++
	}
	if f.Title != "" {
		query += fmt.Sprintf(" AND p.title ILIKE $%d", argIdx)
		args = append(args, "%"+f.Title+"%")
		argIdx++
	}
	if f.Content != "" {
		query += fmt.Sprintf(" AND p.post_content ILIKE $%d", argIdx)
		args = append(args, "%"+f.Content+"%")
		argIdx++
	}
	if f.From != nil {
		query += fmt.Sprintf(" AND p.date_published >= $%d", argIdx)
		args = append(args, *f.From)
		argIdx++
	}
	if f.To != nil {
		query += fmt.Sprintf(" AND p.date_published <= $%d", argIdx)
		args = append(args, *f.To)
		argIdx++
	}

	return query, args, argIdx
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var posts []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.UserID, &p.Username, &p.Title, &p.Content, &p.DatePublished); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}
