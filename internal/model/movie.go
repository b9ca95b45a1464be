package model

import "time"

// Languages a movie can be catalogued under, stored as plain strings in
// movies.language. Request validation owns the allow-list.
const (
	LanguageEN = "EN"
	LanguageTR = "TR"
)

// Movie mirrors the `movies` table. Titles are not unique; two movies may
// share a title and differ only by id.
type Movie struct {
	ID          uint64    // movies.id
	Title       string    // movies.title
	Description string    // movies.description
	Duration    int       // movies.duration (minutes)
	Language    string    // movies.language (EN, TR)
	Imdb        float64   // movies.imdb
	ReleaseDate time.Time // movies.release_date
	CreatedAt   time.Time // movies.created_at
	UpdatedAt   time.Time // movies.updated_at
}
