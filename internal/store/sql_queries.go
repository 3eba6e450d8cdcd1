package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-tours/models"
	sq "github.com/Masterminds/squirrel"
)

// psql renders $n placeholders for PostgreSQL.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var (
	userColumns = []string{
		"id", "name", "email", "photo", "role",
		"password_changed_at", "password_reset_token", "password_reset_expires",
		"active", "created_at",
	}
	userColumnsWithPassword = append(append([]string{}, userColumns...), "password")

	tourColumns = []string{
		"id", "name", "slug", "duration", "max_group_size", "difficulty",
		"ratings_average", "ratings_quantity", "price", "summary", "description",
		"image_cover", "created_at",
	}

	reviewColumns  = []string{"id", "review", "rating", "tour_id", "user_id", "created_at"}
	bookingColumns = []string{"id", "tour_id", "user_id", "price", "paid", "session_id", "created_at"}
)

func returning(columns []string) string {
	return "RETURNING " + strings.Join(columns, ", ")
}

func toSQL(b sq.Sqlizer) (string, []any, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// ── users ─────────────────────────────────────────────────────────────────────

func selectActiveUsers(withPassword bool) sq.SelectBuilder {
	columns := userColumns
	if withPassword {
		columns = userColumnsWithPassword
	}
	return psql.Select(columns...).From(models.User{}.TableName()).Where(sq.Eq{"active": true})
}

func buildInsertUserQuery(user models.User) (string, []any, error) {
	return toSQL(psql.Insert(models.User{}.TableName()).
		Columns("name", "email", "photo", "role", "password", "password_changed_at").
		Values(user.Name, user.Email, user.Photo, user.Role, user.PasswordHash, user.PasswordChangedAt).
		Suffix(returning(userColumns)))
}

func buildFindUserByEmailQuery(email string, withPassword bool) (string, []any, error) {
	return toSQL(selectActiveUsers(withPassword).Where(sq.Eq{"email": email}))
}

func buildFindUserByIDQuery(userID int64, withPassword bool) (string, []any, error) {
	return toSQL(selectActiveUsers(withPassword).Where(sq.Eq{"id": userID}))
}

func buildFindUserByResetTokenQuery(tokenHash string, now time.Time) (string, []any, error) {
	return toSQL(selectActiveUsers(false).
		Where(sq.Eq{"password_reset_token": tokenHash}).
		Where(sq.Gt{"password_reset_expires": now}))
}

func buildListUsersQuery() (string, []any, error) {
	return toSQL(selectActiveUsers(false).OrderBy("id"))
}

func buildSetResetTokenQuery(userID int64, tokenHash string, expiresAt time.Time) (string, []any, error) {
	return toSQL(psql.Update(models.User{}.TableName()).
		Set("password_reset_token", tokenHash).
		Set("password_reset_expires", expiresAt).
		Where(sq.Eq{"id": userID}))
}

func buildClearResetTokenQuery(userID int64) (string, []any, error) {
	return toSQL(psql.Update(models.User{}.TableName()).
		Set("password_reset_token", sq.Expr("NULL")).
		Set("password_reset_expires", sq.Expr("NULL")).
		Where(sq.Eq{"id": userID}))
}

func buildResetPasswordQuery(userID int64, tokenHash, passwordHash string, changedAt, now time.Time) (string, []any, error) {
	return toSQL(psql.Update(models.User{}.TableName()).
		Set("password", passwordHash).
		Set("password_changed_at", changedAt).
		Set("password_reset_token", sq.Expr("NULL")).
		Set("password_reset_expires", sq.Expr("NULL")).
		Where(sq.Eq{"id": userID}).
		Where(sq.Eq{"password_reset_token": tokenHash}).
		Where(sq.Gt{"password_reset_expires": now}).
		Where(sq.Eq{"active": true}))
}

func buildUpdatePasswordQuery(userID int64, passwordHash string, changedAt time.Time) (string, []any, error) {
	return toSQL(psql.Update(models.User{}.TableName()).
		Set("password", passwordHash).
		Set("password_changed_at", changedAt).
		Where(sq.Eq{"id": userID}).
		Where(sq.Eq{"active": true}))
}

func buildUpdateProfileQuery(userID int64, update models.ProfileUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: empty profile update", ErrBuildingSQLQuery)
	}

	b := psql.Update(models.User{}.TableName())
	if update.Name != nil {
		b = b.Set("name", *update.Name)
	}
	if update.Email != nil {
		b = b.Set("email", *update.Email)
	}
	if update.Role != nil {
		b = b.Set("role", string(*update.Role))
	}

	return toSQL(b.Where(sq.Eq{"id": userID}).
		Where(sq.Eq{"active": true}).
		Suffix(returning(userColumns)))
}

func buildDeactivateUserQuery(userID int64) (string, []any, error) {
	return toSQL(psql.Update(models.User{}.TableName()).
		Set("active", false).
		Where(sq.Eq{"id": userID}).
		Where(sq.Eq{"active": true}))
}

func buildDeleteUserQuery(userID int64) (string, []any, error) {
	return toSQL(psql.Delete(models.User{}.TableName()).Where(sq.Eq{"id": userID}))
}

func buildClearExpiredResetTokensQuery(now time.Time) (string, []any, error) {
	return toSQL(psql.Update(models.User{}.TableName()).
		Set("password_reset_token", sq.Expr("NULL")).
		Set("password_reset_expires", sq.Expr("NULL")).
		Where(sq.NotEq{"password_reset_expires": nil}).
		Where(sq.LtOrEq{"password_reset_expires": now}))
}

// ── tours ─────────────────────────────────────────────────────────────────────

func buildListToursQuery() (string, []any, error) {
	return toSQL(psql.Select(tourColumns...).From(models.Tour{}.TableName()).OrderBy("id"))
}

func buildGetTourQuery(tourID int64) (string, []any, error) {
	return toSQL(psql.Select(tourColumns...).From(models.Tour{}.TableName()).Where(sq.Eq{"id": tourID}))
}

func buildInsertTourQuery(tour models.Tour) (string, []any, error) {
	return toSQL(psql.Insert(models.Tour{}.TableName()).
		Columns("name", "slug", "duration", "max_group_size", "difficulty", "price", "summary", "description", "image_cover").
		Values(tour.Name, tour.Slug, tour.Duration, tour.MaxGroupSize, tour.Difficulty, tour.Price, tour.Summary, tour.Description, tour.ImageCover).
		Suffix(returning(tourColumns)))
}

func buildDeleteTourQuery(tourID int64) (string, []any, error) {
	return toSQL(psql.Delete(models.Tour{}.TableName()).Where(sq.Eq{"id": tourID}))
}

// ── reviews ───────────────────────────────────────────────────────────────────

func buildListReviewsByTourQuery(tourID int64) (string, []any, error) {
	return toSQL(psql.Select(reviewColumns...).
		From(models.Review{}.TableName()).
		Where(sq.Eq{"tour_id": tourID}).
		OrderBy("created_at DESC"))
}

func buildInsertReviewQuery(review models.Review) (string, []any, error) {
	return toSQL(psql.Insert(models.Review{}.TableName()).
		Columns("review", "rating", "tour_id", "user_id").
		Values(review.Review, review.Rating, review.TourID, review.UserID).
		Suffix(returning(reviewColumns)))
}

// buildRefreshTourRatingsQuery recomputes the rating aggregates of a tour
// from its reviews. A tour without reviews falls back to 4.5 / 0.
func buildRefreshTourRatingsQuery(tourID int64) (string, []any, error) {
	return toSQL(psql.Update(models.Tour{}.TableName()).
		Set("ratings_quantity", sq.Expr("(SELECT COUNT(*) FROM reviews WHERE tour_id = ?)", tourID)).
		Set("ratings_average", sq.Expr("COALESCE((SELECT ROUND(AVG(rating)::numeric, 1) FROM reviews WHERE tour_id = ?), 4.5)", tourID)).
		Where(sq.Eq{"id": tourID}))
}

// ── bookings ──────────────────────────────────────────────────────────────────

func buildListBookingsQuery() (string, []any, error) {
	return toSQL(psql.Select(bookingColumns...).From(models.Booking{}.TableName()).OrderBy("created_at DESC"))
}

func buildGetBookingQuery(bookingID int64) (string, []any, error) {
	return toSQL(psql.Select(bookingColumns...).From(models.Booking{}.TableName()).Where(sq.Eq{"id": bookingID}))
}

func buildFindBookingBySessionQuery(sessionID string) (string, []any, error) {
	return toSQL(psql.Select(bookingColumns...).From(models.Booking{}.TableName()).Where(sq.Eq{"session_id": sessionID}))
}

// buildInsertBookingQuery stores an empty SessionID as NULL so that manual
// bookings do not collide on the unique session constraint.
func buildInsertBookingQuery(booking models.Booking) (string, []any, error) {
	var sessionID any
	if booking.SessionID != "" {
		sessionID = booking.SessionID
	}

	return toSQL(psql.Insert(models.Booking{}.TableName()).
		Columns("tour_id", "user_id", "price", "paid", "session_id").
		Values(booking.TourID, booking.UserID, booking.Price, booking.Paid, sessionID).
		Suffix(returning(bookingColumns)))
}

func buildUpdateBookingQuery(bookingID int64, update models.BookingUpdate) (string, []any, error) {
	if update.IsEmpty() {
		return "", nil, fmt.Errorf("%w: empty booking update", ErrBuildingSQLQuery)
	}

	b := psql.Update(models.Booking{}.TableName())
	if update.Price != nil {
		b = b.Set("price", *update.Price)
	}
	if update.Paid != nil {
		b = b.Set("paid", *update.Paid)
	}

	return toSQL(b.Where(sq.Eq{"id": bookingID}).Suffix(returning(bookingColumns)))
}

func buildDeleteBookingQuery(bookingID int64) (string, []any, error) {
	return toSQL(psql.Delete(models.Booking{}.TableName()).Where(sq.Eq{"id": bookingID}))
}
