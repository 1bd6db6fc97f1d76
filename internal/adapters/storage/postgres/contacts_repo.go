package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/contacts"
	"petshop-api/internal/domain/paging"
)

type ContactsRepo struct {
	db *sql.DB
}

func NewContactsRepo(db *sql.DB) *ContactsRepo {
	return &ContactsRepo{db: db}
}

func (r *ContactsRepo) Create(ctx context.Context, c contacts.Contact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, client_id, tag, type, value)
		VALUES ($1, $2, $3, $4, $5)
	`, c.ID, c.ClientID, c.Tag, c.Type, c.Value)
	return err
}

func (r *ContactsRepo) Get(ctx context.Context, sc access.Scope, id string) (contacts.Contact, error) {
	q := `
		SELECT t.id, t.client_id, t.tag, t.type, t.value
		FROM contacts t
		JOIN clients c ON c.id = t.client_id
		WHERE t.id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	var c contacts.Contact
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&c.ID, &c.ClientID, &c.Tag, &c.Type, &c.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return contacts.Contact{}, contacts.ErrNotFound
	}
	if err != nil {
		return contacts.Contact{}, err
	}
	return c, nil
}

func (r *ContactsRepo) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[contacts.Contact], error) {
	base := `
		FROM contacts t
		JOIN clients c ON c.id = t.client_id
		WHERE 1=1`
	args := []any{}
	if sc.Restricted() {
		args = append(args, sc.CPF())
		base += fmt.Sprintf(" AND c.cpf = $%d", len(args))
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*)"+base, args...).Scan(&total); err != nil {
		return paging.Page[contacts.Contact]{}, err
	}

	q := fmt.Sprintf("SELECT t.id, t.client_id, t.tag, t.type, t.value%s ORDER BY t.id LIMIT $%d OFFSET $%d",
		base, len(args)+1, len(args)+2)
	args = append(args, pg.Size, pg.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return paging.Page[contacts.Contact]{}, err
	}
	defer rows.Close()

	out := make([]contacts.Contact, 0)
	for rows.Next() {
		var c contacts.Contact
		if err := rows.Scan(&c.ID, &c.ClientID, &c.Tag, &c.Type, &c.Value); err != nil {
			return paging.Page[contacts.Contact]{}, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[contacts.Contact]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *ContactsRepo) Update(ctx context.Context, c contacts.Contact) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts
		SET client_id = $2, tag = $3, type = $4, value = $5
		WHERE id = $1
	`, c.ID, c.ClientID, c.Tag, c.Type, c.Value)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contacts.ErrNotFound
	}
	return nil
}

func (r *ContactsRepo) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `DELETE FROM contacts WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q = `
			DELETE FROM contacts t
			USING clients c
			WHERE c.id = t.client_id AND t.id = $1 AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
