package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/addresses"
	"petshop-api/internal/domain/paging"
)

type AddressesRepo struct {
	db *sql.DB
}

func NewAddressesRepo(db *sql.DB) *AddressesRepo {
	return &AddressesRepo{db: db}
}

const addressColumns = `a.id, a.client_id, a.street, a.city, a.neighborhood, a.complement, a.tag`

func (r *AddressesRepo) Create(ctx context.Context, a addresses.Address) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO addresses (id, client_id, street, city, neighborhood, complement, tag)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.ClientID, a.Street, a.City, a.Neighborhood, a.Complement, a.Tag)
	return err
}

func (r *AddressesRepo) Get(ctx context.Context, sc access.Scope, id string) (addresses.Address, error) {
	q := `
		SELECT ` + addressColumns + `
		FROM addresses a
		JOIN clients c ON c.id = a.client_id
		WHERE a.id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	var a addresses.Address
	err := r.db.QueryRowContext(ctx, q, args...).Scan(
		&a.ID, &a.ClientID, &a.Street, &a.City, &a.Neighborhood, &a.Complement, &a.Tag,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return addresses.Address{}, addresses.ErrNotFound
	}
	if err != nil {
		return addresses.Address{}, err
	}
	return a, nil
}

func (r *AddressesRepo) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[addresses.Address], error) {
	return r.listWhere(ctx, sc, pg, "", nil)
}

func (r *AddressesRepo) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[addresses.Address], error) {
	return r.listWhere(ctx, sc, pg, "a.client_id", clientID)
}

func (r *AddressesRepo) listWhere(ctx context.Context, sc access.Scope, pg paging.Params, col string, val any) (paging.Page[addresses.Address], error) {
	sb := strings.Builder{}
	sb.WriteString(`
		FROM addresses a
		JOIN clients c ON c.id = a.client_id
		WHERE 1=1`)
	args := []any{}
	if sc.Restricted() {
		args = append(args, sc.CPF())
		sb.WriteString(fmt.Sprintf(" AND c.cpf = $%d", len(args)))
	}
	if col != "" {
		args = append(args, val)
		sb.WriteString(fmt.Sprintf(" AND %s = $%d", col, len(args)))
	}
	base := sb.String()

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return paging.Page[addresses.Address]{}, err
	}

	q := fmt.Sprintf("SELECT %s%s ORDER BY a.id LIMIT $%d OFFSET $%d",
		addressColumns, base, len(args)+1, len(args)+2)
	args = append(args, pg.Size, pg.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return paging.Page[addresses.Address]{}, err
	}
	defer rows.Close()

	out := make([]addresses.Address, 0)
	for rows.Next() {
		var a addresses.Address
		if err := rows.Scan(&a.ID, &a.ClientID, &a.Street, &a.City, &a.Neighborhood, &a.Complement, &a.Tag); err != nil {
			return paging.Page[addresses.Address]{}, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[addresses.Address]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *AddressesRepo) Update(ctx context.Context, a addresses.Address) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE addresses
		SET client_id = $2, street = $3, city = $4, neighborhood = $5, complement = $6, tag = $7
		WHERE id = $1
	`, a.ID, a.ClientID, a.Street, a.City, a.Neighborhood, a.Complement, a.Tag)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return addresses.ErrNotFound
	}
	return nil
}

func (r *AddressesRepo) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `DELETE FROM addresses WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q = `
			DELETE FROM addresses a
			USING clients c
			WHERE c.id = a.client_id AND a.id = $1 AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
