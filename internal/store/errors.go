package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an INSERT or UPDATE of a user
	// violates the unique e-mail constraint.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrNoUserWasFound is returned when a query or update expected to match
	// an active user record matches nothing.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrResetTokenNotMatched is returned by the guarded password reset UPDATE
	// when the token hash no longer matches or has expired, typically because
	// a concurrent reset consumed it first.
	ErrResetTokenNotMatched = errors.New("reset token no longer matches")

	// ErrTourNotFound is returned when a tour lookup or delete matches nothing.
	ErrTourNotFound = errors.New("tour was not found")

	// ErrTourNameAlreadyExists is returned on a duplicate tour name or slug.
	ErrTourNameAlreadyExists = errors.New("tour name already exists")

	// ErrDuplicateReview is returned when a user reviews the same tour twice.
	ErrDuplicateReview = errors.New("user already reviewed this tour")

	// ErrBookingNotFound is returned when a booking lookup, update or delete
	// matches nothing.
	ErrBookingNotFound = errors.New("booking was not found")

	// ErrDuplicateBookingSession is returned when a payment session was
	// already turned into a booking.
	ErrDuplicateBookingSession = errors.New("payment session is already booked")

	// ErrReferenceNotFound is returned when a review or booking points to a
	// tour or user that does not exist.
	ErrReferenceNotFound = errors.New("referenced tour or user does not exist")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
