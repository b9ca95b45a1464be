package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinecore/catalog/internal/model"
)

// MovieUserStatusRepo manages per-user movie flags (favorite / watched).
type MovieUserStatusRepo struct{ db *sql.DB }

func NewMovieUserStatusRepo(db *sql.DB) *MovieUserStatusRepo {
	return &MovieUserStatusRepo{db: db}
}

// Get fetches the status row for a (user, movie) pair. ErrStatusNotFound is
// an expected outcome: reads synthesize a default instead of failing.
func (r *MovieUserStatusRepo) Get(ctx context.Context, userID, movieID uint64) (*model.MovieUserStatus, error) {
	var s model.MovieUserStatus
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, movie_id, is_favorite, is_watched, created_at, updated_at
		 FROM movie_user_statuses WHERE user_id = ? AND movie_id = ?`,
		userID, movieID).
		Scan(&s.ID, &s.UserID, &s.MovieID, &s.IsFavorite, &s.IsWatched, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStatusNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Upsert writes the merged flag values for a (user, movie) pair. The
// UNIQUE(user_id, movie_id) index plus ON DUPLICATE KEY UPDATE makes two
// concurrent first writes converge on a single row instead of duplicating it.
func (r *MovieUserStatusRepo) Upsert(ctx context.Context, s *model.MovieUserStatus) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO movie_user_statuses (user_id, movie_id, is_favorite, is_watched)
		 VALUES (?,?,?,?)
		 ON DUPLICATE KEY UPDATE
		   is_favorite = VALUES(is_favorite),
		   is_watched = VALUES(is_watched),
		   updated_at = CURRENT_TIMESTAMP`,
		s.UserID, s.MovieID, s.IsFavorite, s.IsWatched)
	return err
}

// Filters for ListByUser.
const (
	FilterAll       = ""
	FilterFavorites = "favorites"
	FilterWatched   = "watched"
)

// ListByUser returns the user's status rows joined with the movie title, in
// insertion order, optionally narrowed to favorites or watched. Unpaged.
func (r *MovieUserStatusRepo) ListByUser(ctx context.Context, userID uint64, filter string) ([]*model.MovieStatusEntry, error) {
	q := `SELECT s.movie_id, m.title, s.is_favorite, s.is_watched
	      FROM movie_user_statuses s
	      JOIN movies m ON m.id = s.movie_id
	      WHERE s.user_id = ?`
	switch filter {
	case FilterFavorites:
		q += " AND s.is_favorite = TRUE"
	case FilterWatched:
		q += " AND s.is_watched = TRUE"
	}
	q += " ORDER BY s.id"

	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.MovieStatusEntry
	for rows.Next() {
		e := new(model.MovieStatusEntry)
		if err := rows.Scan(&e.MovieID, &e.MovieTitle, &e.IsFavorite, &e.IsWatched); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
