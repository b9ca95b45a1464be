package model

import "time"

// MovieUserStatus is the association row holding a user's flags for a movie.
// At most one row exists per (user, movie); a missing row reads the same as
// both flags being false.
type MovieUserStatus struct {
	ID         uint64    // movie_user_statuses.id
	UserID     uint64    // movie_user_statuses.user_id
	MovieID    uint64    // movie_user_statuses.movie_id
	IsFavorite bool      // movie_user_statuses.is_favorite
	IsWatched  bool      // movie_user_statuses.is_watched
	CreatedAt  time.Time // movie_user_statuses.created_at
	UpdatedAt  time.Time // movie_user_statuses.updated_at
}

// MovieStatusEntry is a status row joined with its movie title, the shape
// returned by status reads and the my-movies listings.
type MovieStatusEntry struct {
	MovieID    uint64
	MovieTitle string
	IsFavorite bool
	IsWatched  bool
}
