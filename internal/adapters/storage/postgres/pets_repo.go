package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/paging"
	"petshop-api/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `p.id, p.client_id, p.breed_id, p.name, p.image, p.birth_date`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	var birth sql.NullTime
	if p.BirthDate != nil {
		birth = sql.NullTime{Time: *p.BirthDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (id, client_id, breed_id, name, image, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, p.ID, p.ClientID, p.BreedID, p.Name, p.Image, birth)
	return err
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	var birth sql.NullTime
	if err := scan(&p.ID, &p.ClientID, &p.BreedID, &p.Name, &p.Image, &birth); err != nil {
		return pets.Pet{}, err
	}
	if birth.Valid {
		t := birth.Time
		p.BirthDate = &t
	}
	return p, nil
}

func (r *PetsRepo) Get(ctx context.Context, sc access.Scope, id string) (pets.Pet, error) {
	q := `
		SELECT ` + petColumns + `
		FROM pets p
		JOIN clients c ON c.id = p.client_id
		WHERE p.id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	p, err := scanPet(r.db.QueryRowContext(ctx, q, args...).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) Exists(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `
		SELECT EXISTS (
			SELECT 1
			FROM pets p
			JOIN clients c ON c.id = p.client_id
			WHERE p.id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND c.cpf = $2`
		args = append(args, sc.CPF())
	}
	q += `)`

	var ok bool
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *PetsRepo) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[pets.Pet], error) {
	return r.listWhere(ctx, sc, pg, "", nil)
}

func (r *PetsRepo) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[pets.Pet], error) {
	return r.listWhere(ctx, sc, pg, "p.client_id", clientID)
}

// listWhere arma el listado paginado con el scope y un filtro de
// igualdad opcional.
func (r *PetsRepo) listWhere(ctx context.Context, sc access.Scope, pg paging.Params, col string, val any) (paging.Page[pets.Pet], error) {
	sb := strings.Builder{}
	sb.WriteString(`
		FROM pets p
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
		return paging.Page[pets.Pet]{}, err
	}

	q := fmt.Sprintf("SELECT %s%s ORDER BY p.id LIMIT $%d OFFSET $%d",
		petColumns, base, len(args)+1, len(args)+2)
	args = append(args, pg.Size, pg.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return paging.Page[pets.Pet]{}, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return paging.Page[pets.Pet]{}, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[pets.Pet]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	var birth sql.NullTime
	if p.BirthDate != nil {
		birth = sql.NullTime{Time: *p.BirthDate, Valid: true}
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET client_id = $2, breed_id = $3, name = $4, image = $5, birth_date = $6
		WHERE id = $1
	`, p.ID, p.ClientID, p.BreedID, p.Name, p.Image, birth)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `DELETE FROM pets WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q = `
			DELETE FROM pets p
			USING clients c
			WHERE c.id = p.client_id AND p.id = $1 AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
