package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinecore/catalog/internal/model"
)

// MovieRepo encapsulates all queries against the `movies` table.
type MovieRepo struct{ db *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{db: db} }

const movieColumns = "id, title, description, duration, language, imdb, release_date, created_at, updated_at"

func scanMovie(row interface{ Scan(...any) error }) (*model.Movie, error) {
	var m model.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Duration, &m.Language,
		&m.Imdb, &m.ReleaseDate, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserts a movie. Titles are not unique, so the insert is
// unconditional; the returned record carries the generated id and timestamps.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) (*model.Movie, error) {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO movies (title, description, duration, language, imdb, release_date) VALUES (?,?,?,?,?,?)",
		m.Title, m.Description, m.Duration, m.Language, m.Imdb, m.ReleaseDate)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a movie by id, ErrMovieNotFound when absent.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (*model.Movie, error) {
	m, err := scanMovie(r.db.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id = ?", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// List returns one page of movies in storage (id) order plus the total count.
func (r *MovieRepo) List(ctx context.Context, page, size int) ([]*model.Movie, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY id LIMIT ? OFFSET ?",
		size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Update writes every mutable field of m back to its row. Handlers merge the
// optional request fields into a loaded record before calling this.
func (r *MovieRepo) Update(ctx context.Context, m *model.Movie) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE movies SET title = ?, description = ?, duration = ?, language = ?, imdb = ?,
		 release_date = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		m.Title, m.Description, m.Duration, m.Language, m.Imdb, m.ReleaseDate, m.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, err := r.GetByID(ctx, m.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a movie together with its category links and user status
// rows in one transaction.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var exists uint64
	if err = tx.QueryRowContext(ctx, "SELECT id FROM movies WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movie_categories WHERE movie_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movie_user_statuses WHERE movie_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM movies WHERE id = ?", id)
	return err
}
