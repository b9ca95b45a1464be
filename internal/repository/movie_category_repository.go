package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinecore/catalog/internal/model"
)

// MovieCategoryRepo manages the movie↔category association rows.
type MovieCategoryRepo struct{ db *sql.DB }

func NewMovieCategoryRepo(db *sql.DB) *MovieCategoryRepo { return &MovieCategoryRepo{db: db} }

// Link creates the association between a movie and a category. The existence
// checks and the insert run in one transaction so a vanishing side cannot
// leave an orphaned row; the UNIQUE(movie_id, category_id) index catches the
// duplicate-insert race and surfaces it as ErrAlreadyLinked.
func (r *MovieCategoryRepo) Link(ctx context.Context, movieID, categoryID uint64) (err error) {
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

	var one int
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM movies WHERE id = ?", movieID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrMovieNotFound
		}
		return err
	}
	if err = tx.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", categoryID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCategoryNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx,
		"INSERT INTO movie_categories (movie_id, category_id) VALUES (?,?)",
		movieID, categoryID); err != nil {
		if isDuplicate(err) {
			err = ErrAlreadyLinked
		}
		return err
	}
	return nil
}

// Unlink removes the association; ErrLinkNotFound when the pair is not linked.
func (r *MovieCategoryRepo) Unlink(ctx context.Context, movieID, categoryID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM movie_categories WHERE movie_id = ? AND category_id = ?",
		movieID, categoryID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrLinkNotFound
	}
	return nil
}

// CategoriesOfMovie returns the categories linked to a movie in association
// insertion order. A missing movie is ErrMovieNotFound; a movie with no links
// yields an empty slice.
func (r *MovieCategoryRepo) CategoriesOfMovie(ctx context.Context, movieID uint64) ([]*model.Category, error) {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM movies WHERE id = ?", movieID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT c.id, c.name, c.created_at, c.updated_at
		 FROM movie_categories mc
		 JOIN categories c ON c.id = mc.category_id
		 WHERE mc.movie_id = ? ORDER BY mc.id`, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MoviesOfCategory is the symmetric listing, keyed by category.
func (r *MovieCategoryRepo) MoviesOfCategory(ctx context.Context, categoryID uint64) ([]*model.Movie, error) {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM categories WHERE id = ?", categoryID).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT m.id, m.title, m.description, m.duration, m.language, m.imdb, m.release_date, m.created_at, m.updated_at
		 FROM movie_categories mc
		 JOIN movies m ON m.id = mc.movie_id
		 WHERE mc.category_id = ? ORDER BY mc.id`, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Movie
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
