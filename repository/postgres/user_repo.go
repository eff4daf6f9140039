package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chirper/backend/domain"
	"github.com/chirper/backend/repository"
)

const uniqueViolation = "23505"

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT id, email, username, full_name, birthday, role, active, registration_date,
		       password_hash, activation_code, password_reset_code,
		       tweet_count, media_tweet_count, like_count
		FROM users
		WHERE email = $1
	`
	row := r.pool.QueryRow(ctx, query, email)

	var user domain.User
	var birthday, passwordHash, activationCode, resetCode *string

	if err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &birthday,
		&user.Role, &user.Active, &user.RegistrationDate,
		&passwordHash, &activationCode, &resetCode,
		&user.TweetCount, &user.MediaTweetCount, &user.LikeCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.Birthday = deref(birthday)
	user.PasswordHash = deref(passwordHash)
	user.ActivationCode = deref(activationCode)
	user.PasswordResetCode = deref(resetCode)
	return &user, nil
}

func (r *userRepository) GetAuthByEmail(ctx context.Context, email string) (*domain.AuthUser, error) {
	const query = `
		SELECT id, email, username, full_name, role, active,
		       tweet_count, media_tweet_count, like_count
		FROM users
		WHERE email = $1
	`
	return r.scanAuthUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetAuthByResetCode(ctx context.Context, code string) (*domain.AuthUser, error) {
	const query = `
		SELECT id, email, username, full_name, role, active,
		       tweet_count, media_tweet_count, like_count
		FROM users
		WHERE password_reset_code = $1
	`
	return r.scanAuthUser(r.pool.QueryRow(ctx, query, code))
}

func (r *userRepository) GetCommonByEmail(ctx context.Context, email string) (*domain.CommonUser, error) {
	const query = `SELECT id, email, full_name FROM users WHERE email = $1`
	return r.scanCommonUser(r.pool.QueryRow(ctx, query, email))
}

func (r *userRepository) GetCommonByActivationCode(ctx context.Context, code string) (*domain.CommonUser, error) {
	const query = `SELECT id, email, full_name FROM users WHERE activation_code = $1`
	return r.scanCommonUser(r.pool.QueryRow(ctx, query, code))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
		INSERT INTO users (email, username, full_name, birthday, role, active,
		                   registration_date, tweet_count, media_tweet_count, like_count)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), 0, 0, 0)
		RETURNING id, registration_date
	`
	err := r.pool.QueryRow(ctx, query,
		user.Email,
		user.Username,
		user.FullName,
		nullString(user.Birthday),
		user.Role,
		user.Active,
	).Scan(&user.ID, &user.RegistrationDate)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.NewError(domain.ErrCodeConflict, "email already registered")
		}
		return err
	}
	return nil
}

func (r *userRepository) UpdatePending(ctx context.Context, id int64, update repository.PendingUpdate) error {
	const query = `
		UPDATE users
		SET username = $2, full_name = $3, birthday = $4, role = $5, registration_date = NOW()
		WHERE id = $1
	`
	return r.exec(ctx, query, id, update.Username, update.FullName, nullString(update.Birthday), domain.RoleUser)
}

func (r *userRepository) UpdateActivationCode(ctx context.Context, id int64, code string) error {
	const query = `UPDATE users SET activation_code = $2 WHERE id = $1`
	return r.exec(ctx, query, id, nullString(code))
}

func (r *userRepository) UpdateResetCode(ctx context.Context, id int64, code string) error {
	const query = `UPDATE users SET password_reset_code = $2 WHERE id = $1`
	return r.exec(ctx, query, id, nullString(code))
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`
	return r.exec(ctx, query, id, passwordHash)
}

func (r *userRepository) MarkActive(ctx context.Context, id int64) error {
	const query = `UPDATE users SET active = TRUE WHERE id = $1`
	return r.exec(ctx, query, id)
}

func (r *userRepository) GetPasswordHashByID(ctx context.Context, id int64) (string, error) {
	const query = `SELECT COALESCE(password_hash, '') FROM users WHERE id = $1`

	var hash string
	if err := r.pool.QueryRow(ctx, query, id).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrUserNotFound
		}
		return "", err
	}
	return hash, nil
}

func (r *userRepository) exec(ctx context.Context, query string, args ...any) error {
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *userRepository) scanAuthUser(row pgx.Row) (*domain.AuthUser, error) {
	var user domain.AuthUser
	if err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.FullName, &user.Role, &user.Active,
		&user.TweetCount, &user.MediaTweetCount, &user.LikeCount,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) scanCommonUser(row pgx.Row) (*domain.CommonUser, error) {
	var user domain.CommonUser
	if err := row.Scan(&user.ID, &user.Email, &user.FullName); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
