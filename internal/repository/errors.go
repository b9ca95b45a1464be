// Package repository contains data access logic separated from HTTP handlers.
// Sentinel errors defined here let handlers translate storage failures into
// specific HTTP statuses without inspecting driver internals.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrUserNotFound is returned when a user id or email has no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailExists is returned when registering or updating to an email
	// that is already taken.
	ErrEmailExists = errors.New("email already exists")
	// ErrMovieNotFound is returned when a movie id has no row.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrCategoryNotFound is returned when a category id has no row.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDuplicateName is returned when a category name already exists.
	ErrDuplicateName = errors.New("a category with this name already exists")
	// ErrAlreadyLinked is returned when a (movie, category) pair is linked twice.
	ErrAlreadyLinked = errors.New("this category is already assigned to the movie")
	// ErrLinkNotFound is returned when unlinking a pair that is not linked.
	ErrLinkNotFound = errors.New("movie-category relation not found")
	// ErrStatusNotFound is returned when no status row exists for a (user, movie) pair.
	ErrStatusNotFound = errors.New("movie status not found")
	// ErrTokenInvalid is returned for unknown, expired or revoked refresh tokens.
	ErrTokenInvalid = errors.New("invalid refresh token")
)

const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL duplicate-key violation. The
// unique indexes behind it are the real guard against check-then-act races;
// the application-level existence checks only produce friendlier messages.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}
