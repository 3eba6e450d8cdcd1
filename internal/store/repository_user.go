package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-tours/internal/logger"
	"github.com/MKhiriev/go-tours/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account lookup and field-level updates against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, withPassword bool) (models.User, error) {
	var u models.User
	dest := []any{
		&u.UserID, &u.Name, &u.Email, &u.Photo, &u.Role,
		&u.PasswordChangedAt, &u.PasswordResetToken, &u.PasswordResetExpires,
		&u.Active, &u.CreatedAt,
	}
	if withPassword {
		dest = append(dest, &u.PasswordHash)
	}

	err := row.Scan(dest...)
	return u, err
}

// CreateUser persists a new user record and returns it with server-assigned
// fields (UserID, Active, CreatedAt) filled in.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertUserQuery(user)
	if err != nil {
		return models.User{}, err
	}

	created, err := scanUser(r.db.QueryRowContext(ctx, query, args...), false)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Msg("error inserting user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrEmailAlreadyExists
		default:
			return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
		}
	}

	return created, nil
}

// FindUserByEmail retrieves the active user with the given e-mail.
// [ErrNoUserWasFound] is returned when nothing matches.
func (r *userRepository) FindUserByEmail(ctx context.Context, email string, withPassword bool) (models.User, error) {
	query, args, err := buildFindUserByEmailQuery(email, withPassword)
	if err != nil {
		return models.User{}, err
	}

	return r.findOne(ctx, "*userRepository.FindUserByEmail", query, args, withPassword)
}

// FindUserByID retrieves the active user with the given id, loading the
// PasswordHash only when withPassword is set.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64, withPassword bool) (models.User, error) {
	query, args, err := buildFindUserByIDQuery(userID, withPassword)
	if err != nil {
		return models.User{}, err
	}

	return r.findOne(ctx, "*userRepository.FindUserByID", query, args, withPassword)
}

func (r *userRepository) FindUserByResetToken(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	query, args, err := buildFindUserByResetTokenQuery(tokenHash, now)
	if err != nil {
		return models.User{}, err
	}

	return r.findOne(ctx, "*userRepository.FindUserByResetToken", query, args, false)
}

func (r *userRepository) findOne(ctx context.Context, funcName, query string, args []any, withPassword bool) (models.User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...), withPassword)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("error querying user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// ListUsers returns every active user ordered by id.
func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListUsersQuery()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 16)
	for rows.Next() {
		user, scanErr := scanUser(rows, false)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	query, args, err := buildSetResetTokenQuery(userID, tokenHash, expiresAt)
	if err != nil {
		return err
	}

	return r.execOne(ctx, "*userRepository.SetResetToken", query, args, ErrNoUserWasFound)
}

// ClearResetToken is the rollback path of the forgot-password flow, so
// transient failures are retried.
func (r *userRepository) ClearResetToken(ctx context.Context, userID int64) error {
	query, args, err := buildClearResetTokenQuery(userID)
	if err != nil {
		return err
	}

	return r.db.withRetry(ctx, func() error {
		return r.execOne(ctx, "*userRepository.ClearResetToken", query, args, ErrNoUserWasFound)
	})
}

// ResetPassword performs the guarded reset write. Zero affected rows means
// the token was consumed or expired in the meantime: [ErrResetTokenNotMatched].
func (r *userRepository) ResetPassword(ctx context.Context, userID int64, tokenHash, passwordHash string, changedAt, now time.Time) error {
	query, args, err := buildResetPasswordQuery(userID, tokenHash, passwordHash, changedAt, now)
	if err != nil {
		return err
	}

	return r.execOne(ctx, "*userRepository.ResetPassword", query, args, ErrResetTokenNotMatched)
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string, changedAt time.Time) error {
	query, args, err := buildUpdatePasswordQuery(userID, passwordHash, changedAt)
	if err != nil {
		return err
	}

	return r.execOne(ctx, "*userRepository.UpdatePassword", query, args, ErrNoUserWasFound)
}

func (r *userRepository) UpdateProfile(ctx context.Context, userID int64, update models.ProfileUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateProfileQuery(userID, update)
	if err != nil {
		return models.User{}, err
	}

	user, err := scanUser(r.db.QueryRowContext(ctx, query, args...), false)
	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, sql.ErrNoRows):
		return models.User{}, ErrNoUserWasFound
	case postgresError(err) == pgerrcode.UniqueViolation:
		return models.User{}, ErrEmailAlreadyExists
	default:
		log.Err(err).Str("func", "*userRepository.UpdateProfile").Int64("user_id", userID).Msg("error updating profile")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

func (r *userRepository) Deactivate(ctx context.Context, userID int64) error {
	query, args, err := buildDeactivateUserQuery(userID)
	if err != nil {
		return err
	}

	return r.execOne(ctx, "*userRepository.Deactivate", query, args, ErrNoUserWasFound)
}

func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	query, args, err := buildDeleteUserQuery(userID)
	if err != nil {
		return err
	}

	return r.execOne(ctx, "*userRepository.DeleteUser", query, args, ErrNoUserWasFound)
}

func (r *userRepository) ClearExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildClearExpiredResetTokensQuery(now)
	if err != nil {
		return 0, err
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearExpiredResetTokens").Msg("failed to clear expired reset tokens")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return res.RowsAffected()
}

// execOne executes a single-row DML statement and maps zero affected rows to
// notFound.
func (r *userRepository) execOne(ctx context.Context, funcName, query string, args []any, notFound error) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute statement")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return notFound
	}

	return nil
}
