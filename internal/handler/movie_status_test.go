package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinecore/catalog/internal/model"
)

func newStatusFixture(t *testing.T) (*MovieStatusHandler, *fakeStatusStore) {
	t.Helper()
	movies := newFakeMovieStore()
	for _, title := range []string{"Inception", "Tenet"} {
		_, err := movies.Create(context.Background(), &model.Movie{Title: title, Language: model.LanguageEN})
		require.NoError(t, err)
	}
	statuses := newFakeStatusStore(movies)
	return NewMovieStatusHandler(statuses, movies), statuses
}

func TestStatusDefaultSynthesis(t *testing.T) {
	h, statuses := newStatusFixture(t)

	// reading a status that was never written yields both flags false
	rec := perform(t, h.Get, http.MethodGet, "/api/users/profile/movies/1/status", "",
		asUser(1, model.RoleUser), withParams("movieId", "1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var out statusResponse
	payloadInto(t, decodeEnvelope(t, rec), &out)
	assert.Equal(t, uint64(1), out.MovieID)
	assert.Equal(t, "Inception", out.MovieTitle)
	assert.False(t, out.IsFavorite)
	assert.False(t, out.IsWatched)

	// and the read itself persisted nothing
	assert.Empty(t, statuses.statuses)
}

func TestStatusUpdateMergesFlags(t *testing.T) {
	h, _ := newStatusFixture(t)

	rec := perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/1/status",
		`{"isFavorite":true}`, asUser(1, model.RoleUser), withParams("movieId", "1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var out statusResponse
	payloadInto(t, decodeEnvelope(t, rec), &out)
	assert.True(t, out.IsFavorite)
	assert.False(t, out.IsWatched)

	// an absent flag keeps its stored value
	rec = perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/1/status",
		`{"isWatched":true}`, asUser(1, model.RoleUser), withParams("movieId", "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	payloadInto(t, decodeEnvelope(t, rec), &out)
	assert.True(t, out.IsFavorite)
	assert.True(t, out.IsWatched)

	// flags can be switched back off
	rec = perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/1/status",
		`{"isFavorite":false}`, asUser(1, model.RoleUser), withParams("movieId", "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	payloadInto(t, decodeEnvelope(t, rec), &out)
	assert.False(t, out.IsFavorite)
	assert.True(t, out.IsWatched)
}

func TestStatusUnknownMovie(t *testing.T) {
	h, _ := newStatusFixture(t)

	rec := perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/9/status",
		`{"isFavorite":true}`, asUser(1, model.RoleUser), withParams("movieId", "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = perform(t, h.Get, http.MethodGet, "/api/users/profile/movies/9/status", "",
		asUser(1, model.RoleUser), withParams("movieId", "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStatusListsAndFilters(t *testing.T) {
	h, _ := newStatusFixture(t)

	// movie 1 favorite, movie 2 watched
	rec := perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/1/status",
		`{"isFavorite":true}`, asUser(1, model.RoleUser), withParams("movieId", "1"))
	require.Equal(t, http.StatusOK, rec.Code)
	rec = perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/2/status",
		`{"isWatched":true}`, asUser(1, model.RoleUser), withParams("movieId", "2"))
	require.Equal(t, http.StatusOK, rec.Code)

	// another user's flags stay invisible
	rec = perform(t, h.Update, http.MethodPut, "/api/users/profile/movies/1/status",
		`{"isWatched":true}`, asUser(2, model.RoleUser), withParams("movieId", "1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []statusResponse

	rec = perform(t, h.MyMovies, http.MethodGet, "/api/users/profile/movies", "", asUser(1, model.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)
	payloadInto(t, decodeEnvelope(t, rec), &entries)
	assert.Len(t, entries, 2)

	rec = perform(t, h.MyFavorites, http.MethodGet, "/api/users/profile/movies/favorites", "", asUser(1, model.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)
	payloadInto(t, decodeEnvelope(t, rec), &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "Inception", entries[0].MovieTitle)

	rec = perform(t, h.MyWatched, http.MethodGet, "/api/users/profile/movies/watched", "", asUser(1, model.RoleUser))
	require.Equal(t, http.StatusOK, rec.Code)
	payloadInto(t, decodeEnvelope(t, rec), &entries)
	require.Len(t, entries, 1)
	assert.Equal(t, "Tenet", entries[0].MovieTitle)
}

func TestStatusRequiresIdentity(t *testing.T) {
	h, _ := newStatusFixture(t)

	rec := perform(t, h.Get, http.MethodGet, "/api/users/profile/movies/1/status", "",
		withParams("movieId", "1"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
