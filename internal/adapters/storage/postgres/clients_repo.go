package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/clients"
	"petshop-api/internal/domain/paging"
)

type ClientsRepo struct {
	db *sql.DB
}

func NewClientsRepo(db *sql.DB) *ClientsRepo {
	return &ClientsRepo{db: db}
}

func (r *ClientsRepo) Create(ctx context.Context, c clients.Client) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (id, name, cpf, image, registration_date)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.Name, c.CPF, c.Image, c.RegistrationDate)
	return err
}

func (r *ClientsRepo) Get(ctx context.Context, sc access.Scope, id string) (clients.Client, error) {
	q := `
		SELECT id, name, cpf, image, registration_date
		FROM clients
		WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND cpf = $2`
		args = append(args, sc.CPF())
	}

	var c clients.Client
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&c.ID, &c.Name, &c.CPF, &c.Image, &c.RegistrationDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return clients.Client{}, clients.ErrNotFound
	}
	if err != nil {
		return clients.Client{}, err
	}
	return c, nil
}

func (r *ClientsRepo) Exists(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `SELECT EXISTS (SELECT 1 FROM clients WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND cpf = $2`
		args = append(args, sc.CPF())
	}
	q += `)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *ClientsRepo) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[clients.Client], error) {
	where := ""
	args := []any{}
	if sc.Restricted() {
		where = ` WHERE cpf = $1`
		args = append(args, sc.CPF())
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return paging.Page[clients.Client]{}, err
	}

	q := fmt.Sprintf(`
		SELECT id, name, cpf, image, registration_date
		FROM clients%s
		ORDER BY id
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, pg.Size, pg.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return paging.Page[clients.Client]{}, err
	}
	defer rows.Close()

	out := make([]clients.Client, 0)
	for rows.Next() {
		var c clients.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.CPF, &c.Image, &c.RegistrationDate); err != nil {
			return paging.Page[clients.Client]{}, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[clients.Client]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *ClientsRepo) Update(ctx context.Context, c clients.Client) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET name = $2, cpf = $3, image = $4
		WHERE id = $1
	`, c.ID, c.Name, c.CPF, c.Image)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return clients.ErrNotFound
	}
	return nil
}

func (r *ClientsRepo) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `DELETE FROM clients WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND cpf = $2`
		args = append(args, sc.CPF())
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
