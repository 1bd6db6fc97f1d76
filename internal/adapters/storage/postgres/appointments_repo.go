package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"petshop-api/internal/domain/access"
	"petshop-api/internal/domain/appointments"
	"petshop-api/internal/domain/paging"
)

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

const appointmentColumns = `ap.id, ap.pet_id, ap.description, ap.cost, ap.date`

func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (id, pet_id, description, cost, date)
		VALUES ($1, $2, $3, $4, $5)
	`, a.ID, a.PetID, a.Description, a.Cost, a.Date)
	return err
}

func (r *AppointmentsRepo) Get(ctx context.Context, sc access.Scope, id string) (appointments.Appointment, error) {
	q := `
		SELECT ` + appointmentColumns + `
		FROM appointments ap
		JOIN pets p ON p.id = ap.pet_id
		JOIN clients c ON c.id = p.client_id
		WHERE ap.id = $1`
	args := []any{id}
	if sc.Restricted() {
		q += ` AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	var a appointments.Appointment
	err := r.db.QueryRowContext(ctx, q, args...).Scan(&a.ID, &a.PetID, &a.Description, &a.Cost, &a.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	if err != nil {
		return appointments.Appointment{}, err
	}
	return a, nil
}

func (r *AppointmentsRepo) List(ctx context.Context, sc access.Scope, pg paging.Params) (paging.Page[appointments.Appointment], error) {
	return r.listWhere(ctx, sc, pg, "", nil)
}

func (r *AppointmentsRepo) ListByClient(ctx context.Context, sc access.Scope, clientID string, pg paging.Params) (paging.Page[appointments.Appointment], error) {
	return r.listWhere(ctx, sc, pg, "p.client_id", clientID)
}

func (r *AppointmentsRepo) ListByPet(ctx context.Context, sc access.Scope, petID string, pg paging.Params) (paging.Page[appointments.Appointment], error) {
	return r.listWhere(ctx, sc, pg, "ap.pet_id", petID)
}

func (r *AppointmentsRepo) listWhere(ctx context.Context, sc access.Scope, pg paging.Params, col string, val any) (paging.Page[appointments.Appointment], error) {
	sb := strings.Builder{}
	sb.WriteString(`
		FROM appointments ap
		JOIN pets p ON p.id = ap.pet_id
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
		return paging.Page[appointments.Appointment]{}, err
	}

	q := fmt.Sprintf("SELECT %s%s ORDER BY ap.date DESC, ap.id LIMIT $%d OFFSET $%d",
		appointmentColumns, base, len(args)+1, len(args)+2)
	args = append(args, pg.Size, pg.Offset())

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return paging.Page[appointments.Appointment]{}, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		var a appointments.Appointment
		if err := rows.Scan(&a.ID, &a.PetID, &a.Description, &a.Cost, &a.Date); err != nil {
			return paging.Page[appointments.Appointment]{}, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[appointments.Appointment]{}, err
	}
	return paging.New(out, pg, total), nil
}

func (r *AppointmentsRepo) Update(ctx context.Context, a appointments.Appointment) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET pet_id = $2, description = $3, cost = $4, date = $5
		WHERE id = $1
	`, a.ID, a.PetID, a.Description, a.Cost, a.Date)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return appointments.ErrNotFound
	}
	return nil
}

func (r *AppointmentsRepo) Delete(ctx context.Context, sc access.Scope, id string) (bool, error) {
	q := `DELETE FROM appointments WHERE id = $1`
	args := []any{id}
	if sc.Restricted() {
		q = `
			DELETE FROM appointments ap
			USING pets p, clients c
			WHERE p.id = ap.pet_id AND c.id = p.client_id
			  AND ap.id = $1 AND c.cpf = $2`
		args = append(args, sc.CPF())
	}

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}
