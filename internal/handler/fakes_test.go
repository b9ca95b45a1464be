package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/cinecore/catalog/internal/model"
	"github.com/cinecore/catalog/internal/repository"
)

// In-memory stores used by the handler tests. They mirror the repository
// contracts, including the sentinel errors handlers translate into statuses.

type fakeUserStore struct {
	seq   uint64
	users map[uint64]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]*model.User{}}
}

func (s *fakeUserStore) Create(_ context.Context, fullname, email, passwordHash, role string) (*model.User, error) {
	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return nil, repository.ErrEmailExists
		}
	}
	s.seq++
	now := time.Now().UTC()
	u := &model.User{
		ID: s.seq, Fullname: fullname, Email: email,
		PasswordHash: passwordHash, Role: role,
		CreatedAt: now, UpdatedAt: now,
	}
	s.users[u.ID] = u
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range s.users {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) List(_ context.Context) ([]*model.User, error) {
	out := make([]*model.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *fakeUserStore) Update(_ context.Context, u *model.User) error {
	if _, ok := s.users[u.ID]; !ok {
		return repository.ErrUserNotFound
	}
	for _, other := range s.users {
		if other.ID != u.ID && other.Email == u.Email {
			return repository.ErrEmailExists
		}
	}
	cp := *u
	cp.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

type fakeTokenStore struct {
	tokens map[string]*model.RefreshToken
}

func newFakeTokenStore() *fakeTokenStore {
	return &fakeTokenStore{tokens: map[string]*model.RefreshToken{}}
}

func (s *fakeTokenStore) StoreRefresh(_ context.Context, userID uint64, tokenHash string, exp time.Time) error {
	s.tokens[tokenHash] = &model.RefreshToken{
		ID:        uint64(len(s.tokens) + 1),
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: exp,
		CreatedAt: time.Now().UTC(),
	}
	return nil
}

func (s *fakeTokenStore) ValidateRefresh(_ context.Context, tokenHash string) (uint64, error) {
	tk, ok := s.tokens[tokenHash]
	if !ok || tk.RevokedAt != nil || time.Now().UTC().After(tk.ExpiresAt) {
		return 0, repository.ErrTokenInvalid
	}
	return tk.UserID, nil
}

func (s *fakeTokenStore) RevokeByHash(_ context.Context, tokenHash string) error {
	if tk, ok := s.tokens[tokenHash]; ok && tk.RevokedAt == nil {
		now := time.Now().UTC()
		tk.RevokedAt = &now
	}
	return nil
}

func (s *fakeTokenStore) RevokeAllForUser(_ context.Context, userID uint64) error {
	now := time.Now().UTC()
	for _, tk := range s.tokens {
		if tk.UserID == userID && tk.RevokedAt == nil {
			tk.RevokedAt = &now
		}
	}
	return nil
}

type fakeCategoryStore struct {
	seq  uint64
	cats map[uint64]*model.Category
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{cats: map[uint64]*model.Category{}}
}

func (s *fakeCategoryStore) Create(_ context.Context, name string) (*model.Category, error) {
	for _, c := range s.cats {
		if c.Name == name {
			return nil, repository.ErrDuplicateName
		}
	}
	s.seq++
	now := time.Now().UTC()
	cat := &model.Category{ID: s.seq, Name: name, CreatedAt: now, UpdatedAt: now}
	s.cats[cat.ID] = cat
	cp := *cat
	return &cp, nil
}

func (s *fakeCategoryStore) GetByID(_ context.Context, id uint64) (*model.Category, error) {
	cat, ok := s.cats[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *cat
	return &cp, nil
}

func (s *fakeCategoryStore) List(_ context.Context, page, size int) ([]*model.Category, int64, error) {
	all := make([]*model.Category, 0, len(s.cats))
	for _, c := range s.cats {
		cp := *c
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *fakeCategoryStore) UpdateName(_ context.Context, id uint64, name string) error {
	if _, ok := s.cats[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	for _, c := range s.cats {
		if c.ID != id && c.Name == name {
			return repository.ErrDuplicateName
		}
	}
	s.cats[id].Name = name
	s.cats[id].UpdatedAt = time.Now().UTC()
	return nil
}

func (s *fakeCategoryStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.cats[id]; !ok {
		return repository.ErrCategoryNotFound
	}
	delete(s.cats, id)
	return nil
}

type fakeMovieStore struct {
	seq    uint64
	movies map[uint64]*model.Movie
}

func newFakeMovieStore() *fakeMovieStore {
	return &fakeMovieStore{movies: map[uint64]*model.Movie{}}
}

func (s *fakeMovieStore) Create(_ context.Context, m *model.Movie) (*model.Movie, error) {
	s.seq++
	now := time.Now().UTC()
	cp := *m
	cp.ID = s.seq
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.movies[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (s *fakeMovieStore) GetByID(_ context.Context, id uint64) (*model.Movie, error) {
	m, ok := s.movies[id]
	if !ok {
		return nil, repository.ErrMovieNotFound
	}
	cp := *m
	return &cp, nil
}

func (s *fakeMovieStore) List(_ context.Context, page, size int) ([]*model.Movie, int64, error) {
	all := make([]*model.Movie, 0, len(s.movies))
	for _, m := range s.movies {
		cp := *m
		all = append(all, &cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := page * size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *fakeMovieStore) Update(_ context.Context, m *model.Movie) error {
	if _, ok := s.movies[m.ID]; !ok {
		return repository.ErrMovieNotFound
	}
	cp := *m
	cp.UpdatedAt = time.Now().UTC()
	s.movies[m.ID] = &cp
	return nil
}

func (s *fakeMovieStore) Delete(_ context.Context, id uint64) error {
	if _, ok := s.movies[id]; !ok {
		return repository.ErrMovieNotFound
	}
	delete(s.movies, id)
	return nil
}

type linkKey struct{ movieID, categoryID uint64 }

type fakeLinkStore struct {
	movies *fakeMovieStore
	cats   *fakeCategoryStore
	order  []linkKey
	links  map[linkKey]bool
}

func newFakeLinkStore(movies *fakeMovieStore, cats *fakeCategoryStore) *fakeLinkStore {
	return &fakeLinkStore{movies: movies, cats: cats, links: map[linkKey]bool{}}
}

func (s *fakeLinkStore) Link(_ context.Context, movieID, categoryID uint64) error {
	if _, ok := s.movies.movies[movieID]; !ok {
		return repository.ErrMovieNotFound
	}
	if _, ok := s.cats.cats[categoryID]; !ok {
		return repository.ErrCategoryNotFound
	}
	k := linkKey{movieID, categoryID}
	if s.links[k] {
		return repository.ErrAlreadyLinked
	}
	s.links[k] = true
	s.order = append(s.order, k)
	return nil
}

func (s *fakeLinkStore) Unlink(_ context.Context, movieID, categoryID uint64) error {
	k := linkKey{movieID, categoryID}
	if !s.links[k] {
		return repository.ErrLinkNotFound
	}
	delete(s.links, k)
	return nil
}

func (s *fakeLinkStore) CategoriesOfMovie(_ context.Context, movieID uint64) ([]*model.Category, error) {
	if _, ok := s.movies.movies[movieID]; !ok {
		return nil, repository.ErrMovieNotFound
	}
	var out []*model.Category
	for _, k := range s.order {
		if k.movieID == movieID && s.links[k] {
			cp := *s.cats.cats[k.categoryID]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeLinkStore) MoviesOfCategory(_ context.Context, categoryID uint64) ([]*model.Movie, error) {
	if _, ok := s.cats.cats[categoryID]; !ok {
		return nil, repository.ErrCategoryNotFound
	}
	var out []*model.Movie
	for _, k := range s.order {
		if k.categoryID == categoryID && s.links[k] {
			cp := *s.movies.movies[k.movieID]
			out = append(out, &cp)
		}
	}
	return out, nil
}

type statusKey struct{ userID, movieID uint64 }

type fakeStatusStore struct {
	movies   *fakeMovieStore
	order    []statusKey
	statuses map[statusKey]*model.MovieUserStatus
}

func newFakeStatusStore(movies *fakeMovieStore) *fakeStatusStore {
	return &fakeStatusStore{movies: movies, statuses: map[statusKey]*model.MovieUserStatus{}}
}

func (s *fakeStatusStore) Get(_ context.Context, userID, movieID uint64) (*model.MovieUserStatus, error) {
	st, ok := s.statuses[statusKey{userID, movieID}]
	if !ok {
		return nil, repository.ErrStatusNotFound
	}
	cp := *st
	return &cp, nil
}

func (s *fakeStatusStore) Upsert(_ context.Context, st *model.MovieUserStatus) error {
	k := statusKey{st.UserID, st.MovieID}
	if _, ok := s.statuses[k]; !ok {
		s.order = append(s.order, k)
	}
	cp := *st
	s.statuses[k] = &cp
	return nil
}

func (s *fakeStatusStore) ListByUser(_ context.Context, userID uint64, filter string) ([]*model.MovieStatusEntry, error) {
	var out []*model.MovieStatusEntry
	for _, k := range s.order {
		st, ok := s.statuses[k]
		if !ok || st.UserID != userID {
			continue
		}
		if filter == repository.FilterFavorites && !st.IsFavorite {
			continue
		}
		if filter == repository.FilterWatched && !st.IsWatched {
			continue
		}
		title := ""
		if m, ok := s.movies.movies[st.MovieID]; ok {
			title = m.Title
		}
		out = append(out, &model.MovieStatusEntry{
			MovieID:    st.MovieID,
			MovieTitle: title,
			IsFavorite: st.IsFavorite,
			IsWatched:  st.IsWatched,
		})
	}
	return out, nil
}

type fakeEvents struct {
	created []uint64
	deleted []uint64
}

func (f *fakeEvents) MovieCreated(m *model.Movie) { f.created = append(f.created, m.ID) }

func (f *fakeEvents) MovieDeleted(id uint64, title string) { f.deleted = append(f.deleted, id) }
