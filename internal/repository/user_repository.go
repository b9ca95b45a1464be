package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/cinecore/catalog/internal/model"
)

// UserRepo encapsulates all queries against the `users` table.
type UserRepo struct{ db *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a user and returns the stored record. Emails are normalized
// to lower case before insert; the UNIQUE index on users.email turns
// concurrent duplicate registrations into ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, fullname, email, passwordHash, role string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO users (fullname, email, password_hash, role) VALUES (?,?,?,?)",
		fullname, email, passwordHash, role)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.scanOne(ctx,
		"SELECT id, fullname, email, password_hash, role, created_at, updated_at FROM users WHERE email = ? LIMIT 1",
		email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.scanOne(ctx,
		"SELECT id, fullname, email, password_hash, role, created_at, updated_at FROM users WHERE id = ? LIMIT 1",
		id)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns all users ordered by id. The admin listing is unpaged.
func (r *UserRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, fullname, email, password_hash, role, created_at, updated_at FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.User
	for rows.Next() {
		u := new(model.User)
		if err := rows.Scan(&u.ID, &u.Fullname, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable fields of u back to its row. Callers merge
// partial updates into a loaded record first, so this is a full-field write.
func (r *UserRepo) Update(ctx context.Context, u *model.User) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET fullname = ?, email = ?, password_hash = ?, role = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		u.Fullname, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role, u.ID)
	if err != nil {
		if isDuplicate(err) {
			return ErrEmailExists
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Zero affected rows can also mean a no-op write; confirm existence.
		if _, err := r.GetByID(ctx, u.ID); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes a user together with its status rows and refresh tokens in
// one transaction so a partial failure leaves no orphans.
func (r *UserRepo) Delete(ctx context.Context, id uint64) (err error) {
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
	if err = tx.QueryRowContext(ctx, "SELECT id FROM users WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrUserNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM movie_user_statuses WHERE user_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM refresh_tokens WHERE user_id = ?", id); err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id)
	return err
}
