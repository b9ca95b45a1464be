package handler

import (
	"time"

	"github.com/cinecore/catalog/internal/model"
)

// Outbound shapes. Entities never leave the service directly; in particular
// the user's password hash stays out of every payload.

type userResponse struct {
	ID        uint64    `json:"id"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toUserResponse(u *model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Fullname:  u.Fullname,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type movieResponse struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Duration    int       `json:"duration"`
	Language    string    `json:"language"`
	Imdb        float64   `json:"imdb"`
	ReleaseDate time.Time `json:"releaseDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toMovieResponse(m *model.Movie) movieResponse {
	return movieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Duration:    m.Duration,
		Language:    m.Language,
		Imdb:        m.Imdb,
		ReleaseDate: m.ReleaseDate,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toMovieResponses(ms []*model.Movie) []movieResponse {
	out := make([]movieResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, toMovieResponse(m))
	}
	return out
}

type categoryResponse struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func toCategoryResponse(cat *model.Category) categoryResponse {
	return categoryResponse{ID: cat.ID, Name: cat.Name}
}

func toCategoryResponses(cats []*model.Category) []categoryResponse {
	out := make([]categoryResponse, 0, len(cats))
	for _, cat := range cats {
		out = append(out, toCategoryResponse(cat))
	}
	return out
}

type statusResponse struct {
	MovieID    uint64 `json:"movieId"`
	MovieTitle string `json:"movieTitle"`
	IsFavorite bool   `json:"isFavorite"`
	IsWatched  bool   `json:"isWatched"`
}

func toStatusResponse(e *model.MovieStatusEntry) statusResponse {
	return statusResponse{
		MovieID:    e.MovieID,
		MovieTitle: e.MovieTitle,
		IsFavorite: e.IsFavorite,
		IsWatched:  e.IsWatched,
	}
}

func toStatusResponses(entries []*model.MovieStatusEntry) []statusResponse {
	out := make([]statusResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toStatusResponse(e))
	}
	return out
}
