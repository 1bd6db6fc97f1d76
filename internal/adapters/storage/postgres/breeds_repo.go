package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/breeds"
	"petshop-api/internal/domain/paging"
)

type BreedsRepo struct {
	db *sql.DB
}

func NewBreedsRepo(db *sql.DB) *BreedsRepo {
	return &BreedsRepo{db: db}
}

func (r *BreedsRepo) Create(ctx context.Context, b breeds.Breed) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO breeds (id, pet_id, description)
		VALUES ($1, $2, $3)
	`, b.ID, b.PetID, b.Description)
	return err
}

func (r *BreedsRepo) Get(ctx context.Context, sc access.Scope, id string) (breeds.Breed, error) {
	q := `
		SELECT b.id, b.pet_id, b.description
		FROM breeds b
		JOIN pets p ON p.id = b.pet_id
		JOIN clients c ON c.id = p.client_id
		WHERE b.id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	var b breeds.Breed
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&b.ID, &b.PetID, &b.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return breeds.Breed{}, breeds.ErrNotFound
	}
	if err != nil {
		return breeds.Breed{}, err
	}
	return b, nil
}

func (r *BreedsRepo) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[breeds.Breed], error) {
	return r.listWhere(ctx, sc, pg, "", nil)
}

func (r *BreedsRepo) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[breeds.Breed], error) {
	return r.listWhere(ctx, sc, pg, "p.client_id", clientID)
}

func (r *BreedsRepo) ListByPet(ctx context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[breeds.Breed], error) {
	return r.listWhere(ctx, sc, pg, "b.pet_id", petID)
}

func (r *BreedsRepo) listWhere(ctx context.Context, sc access.Scope, pg paging.Params, col string, val any) (paging.Page[breeds.Breed], error) {
	sb := strings.Builder{}
	sb.WriteString(`
		FROM breeds b
		JOIN pets p ON p.id = b.pet_id
		JOIN clients c ON c.id = p.client_id
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
		return paging.Page[breeds.Breed]{}, err
	}

	q := fmt.Sprintf("SELECT b.id, b.pet_id, b.description%s ORDER BY b.id LIMIT $%d OFFSET $%d",
		base, len(args)+1, len(args)+2)
	args = append(args, pg.Size, pg.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return paging.Page[breeds.Breed]{}, err
	}
	defer rows.Close()

	out := make([]breeds.Breed, 0)
	for rows.Next() {
		var b breeds.Breed
		if err := rows.Scan(&b.ID, &b.PetID, &b.Description); err != nil {
			return paging.Page[breeds.Breed]{}, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[breeds.Breed]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *BreedsRepo) Update(ctx context.Context, b breeds.Breed) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE breeds
		SET pet_id = $2, description = $3
		WHERE id = $1
	`, b.ID, b.PetID, b.Description)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return breeds.ErrNotFound
	}
	return nil
}

func (r *BreedsRepo) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `DELETE FROM breeds WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q = `
			DELETE FROM breeds b
			USING pets p, clients c
			WHERE p.id = b.pet_id AND c.id = p.client_id
			  AND b.id = $1 AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
