package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cinecore/catalog/internal/model"
)

// CategoryRepo encapsulates all queries against the `categories` table.
type CategoryRepo struct{ db *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{db: db} }

// Create inserts a category and returns the stored record. The UNIQUE index
// on categories.name turns a lost race between the caller's pre-check and the
// insert into ErrDuplicateName instead of a duplicate row.
func (r *CategoryRepo) Create(ctx context.Context, name string) (*model.Category, error) {
	res, err := r.db.ExecContext(ctx, "INSERT INTO categories (name) VALUES (?)", name)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a category by id, ErrCategoryNotFound when absent.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at, updated_at FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &c, nil
}

// List returns one page of categories in storage (id) order plus the total
// row count for the paging metadata.
func (r *CategoryRepo) List(ctx context.Context, page, size int) ([]*model.Category, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM categories").Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, created_at, updated_at FROM categories ORDER BY id LIMIT ? OFFSET ?",
		size, page*size)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*model.Category
	for rows.Next() {
		c := new(model.Category)
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// UpdateName renames a category. Callers skip the call when the new name
// equals the current one, so every write here is a real rename.
func (r *CategoryRepo) UpdateName(ctx context.Context, id uint64, name string) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE categories SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		name, id)
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicateName
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Delete removes a category and its movie links in one transaction.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if err = tx.QueryRowContext(ctx, "SELECT id FROM categories WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrCategoryNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movie_categories WHERE category_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	return err
}
