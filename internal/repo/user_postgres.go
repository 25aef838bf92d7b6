package repo

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"blogapi/internal/models"
)

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique column")
)

const queryTimeout = 3 * time.Second

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

const userColumns = `id, username, password_hash, is_active, short_biography,
	COALESCE(to_char(birth_date, 'YYYY-MM-DD'), ''), country, city, created_at, updated_at`

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.ShortBiography,
		&u.BirthDate, &u.Country, &u.City, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}

func (r *PostgresUserRepository) Create(u models.User) (models.User, error) {
	query := `INSERT INTO users (username, password_hash, is_active, short_biography, birth_date, country, city)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := r.db.QueryRowContext(ctx, query,
		u.Username, u.PasswordHash, u.IsActive, u.ShortBiography,
		nullableDate(u.BirthDate), u.Country, u.City).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return u, mapUniqueViolation(err)
}

func (r *PostgresUserRepository) GetByUsername(username string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *PostgresUserRepository) GetByID(id int) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) Update(u models.User) (models.User, error) {
	query := `UPDATE users
		SET username = $1, password_hash = $2, is_active = $3, short_biography = $4,
			birth_date = $5, country = $6, city = $7, updated_at = now()
		WHERE id = $8`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query,
		u.Username, u.PasswordHash, u.IsActive, u.ShortBiography,
		nullableDate(u.BirthDate), u.Country, u.City, u.ID)
	if err != nil {
		return models.User{}, mapUniqueViolation(err)
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.User{}, ErrUserNotFound
	}
	return u, nil
}

func (r *PostgresUserRepository) GetInterests(userID int) ([]models.Interest, error) {
	query := `SELECT i.id, i.name FROM interests i
		JOIN user_interests ui ON ui.interest_id = i.id
		WHERE ui.user_id = $1
		ORDER BY i.name`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interests []models.Interest
	for rows.Next() {
		var i models.Interest
		if err := rows.Scan(&i.ID, &i.Name); err != nil {
			return nil, err
		}
		interests = append(interests, i)
	}
	return interests, rows.Err()
}

// SetInterests replaces the user's interest associations, creating interest
// rows that don't exist yet.
func (r *PostgresUserRepository) SetInterests(userID int, names []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_interests WHERE user_id = $1`, userID); err != nil {
		return err
	}

	for _, name := range names {
		var interestID int
		err := tx.QueryRowContext(ctx, `
			WITH inserted AS (
				INSERT INTO interests (name) VALUES ($1)
				ON CONFLICT (name) DO NOTHING
				RETURNING id
			)
			SELECT id FROM inserted
			UNION
			SELECT id FROM interests WHERE name = $1`, name).Scan(&interestID)
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO user_interests (user_id, interest_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, userID, interestID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresUserRepository) Subscribe(subscriberID, targetID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO subscriptions (subscriber_id, subscription_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING`, subscriberID, targetID)
	return err
}

func (r *PostgresUserRepository) Unsubscribe(subscriberID, targetID int) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx,
		`DELETE FROM subscriptions WHERE subscriber_id = $1 AND subscription_id = $2`,
		subscriberID, targetID)
	return err
}

func (r *PostgresUserRepository) Counts(userID int) (models.UserCounts, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM posts WHERE user_id = $1),
		(SELECT COUNT(*) FROM subscriptions WHERE subscription_id = $1),
		(SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1)`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var c models.UserCounts
	err := r.db.QueryRowContext(ctx, query, userID).
		Scan(&c.Posts, &c.Subscribers, &c.Subscriptions)
	return c, err
}

func (r *PostgresUserRepository) ListOthers(excludeID, page, count int) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE id <> $1
		ORDER BY (SELECT COUNT(*) FROM subscriptions s WHERE s.subscription_id = users.id) DESC, id
		LIMIT $2 OFFSET $3`
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, excludeID, count, (page-1)*count)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.ShortBiography,
			&u.BirthDate, &u.Country, &u.City, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func nullableDate(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicatedValueUnique
	}
	return err
}
