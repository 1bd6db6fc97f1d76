package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"petshop-api/internal/domain/paging"
	"petshop-api/internal/domain/users"
	"petshop-api/internal/ports/auth"
)

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (cpf, name, role, password_hash)
		VALUES ($1, $2, $3, $4)
	`, u.CPF, u.Name, string(u.Role), u.PasswordHash)
	if isUniqueViolation(err) {
		return users.ErrConflict
	}
	return err
}

func (r *UsersRepo) GetByCPF(ctx context.Context, cpf string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT cpf, name, role, password_hash
		FROM users
		WHERE cpf = $1
	`, cpf)
	return scanUser(row)
}

func (r *UsersRepo) GetByName(ctx context.Context, name string) (users.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT cpf, name, role, password_hash
		FROM users
		WHERE name = $1
	`, name)
	return scanUser(row)
}

func scanUser(row *sql.Row) (users.User, error) {
	var u users.User
	var role string
	if err := row.Scan(&u.CPF, &u.Name, &role, &u.PasswordHash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, err
	}
	u.Role = auth.Role(role)
	return u, nil
}

func (r *UsersRepo) List(ctx context.Context, pg paging.Params) (paging.Page[users.User], error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return paging.Page[users.User]{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT cpf, name, role, password_hash
		FROM users
		ORDER BY cpf
		LIMIT $1 OFFSET $2
	`, pg.Size, pg.Offset())
	if err != nil {
		return paging.Page[users.User]{}, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		var role string
		if err := rows.Scan(&u.CPF, &u.Name, &role, &u.PasswordHash); err != nil {
			return paging.Page[users.User]{}, err
		}
		u.Role = auth.Role(role)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[users.User]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *UsersRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET name = $2, role = $3, password_hash = $4
		WHERE cpf = $1
	`, u.CPF, u.Name, string(u.Role), u.PasswordHash)
	if isUniqueViolation(err) {
		return users.ErrConflict
	}
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *UsersRepo) Delete(ctx context.Context, cpf string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE cpf = $1`, cpf)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
