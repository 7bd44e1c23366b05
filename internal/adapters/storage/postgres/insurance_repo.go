package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-health-api/internal/domain/insurance"
)

type InsuranceRepo struct {
	db *sql.DB
}

func NewInsuranceRepo(db *sql.DB) *InsuranceRepo {
	return &InsuranceRepo{db: db}
}

func (r *InsuranceRepo) Create(ctx context.Context, e insurance.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO insurance_entries (
			id, cat_id,
			provider, policy_number,
			start_date, end_date,
			premium, coverage,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		e.ID,
		e.CatID,
		e.Provider,
		e.PolicyNumber,
		e.StartDate,
		e.EndDate,
		toNullFloat(e.Premium),
		e.Coverage,
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *InsuranceRepo) GetByID(ctx context.Context, id string) (insurance.Entry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return insurance.Entry{}, insurance.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, cat_id,
			provider, policy_number,
			start_date, end_date,
			premium, coverage,
			created_at, updated_at
		FROM insurance_entries
		WHERE id = $1
	`, id)

	e, err := scanEntry(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return insurance.Entry{}, insurance.ErrNotFound
		}
		return insurance.Entry{}, err
	}
	return e, nil
}

func (r *InsuranceRepo) ListByCat(ctx context.Context, catID string) ([]insurance.Entry, error) {
	catID = strings.TrimSpace(catID)
	if catID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cat_id,
			provider, policy_number,
			start_date, end_date,
			premium, coverage,
			created_at, updated_at
		FROM insurance_entries
		WHERE cat_id = $1
		ORDER BY start_date DESC
	`, catID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]insurance.Entry, 0)
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

func (r *InsuranceRepo) Update(ctx context.Context, e insurance.Entry) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE insurance_entries
		SET
			provider = $2,
			policy_number = $3,
			start_date = $4,
			end_date = $5,
			premium = $6,
			coverage = $7,
			updated_at = $8
		WHERE id = $1
	`,
		e.ID,
		e.Provider,
		e.PolicyNumber,
		e.StartDate,
		e.EndDate,
		toNullFloat(e.Premium),
		e.Coverage,
		e.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return insurance.ErrNotFound
	}
	return nil
}

func (r *InsuranceRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM insurance_entries WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return insurance.ErrNotFound
	}
	return nil
}

func scanEntry(scan func(dest ...any) error) (insurance.Entry, error) {
	var e insurance.Entry
	var premium sql.NullFloat64

	if err := scan(
		&e.ID,
		&e.CatID,
		&e.Provider,
		&e.PolicyNumber,
		&e.StartDate,
		&e.EndDate,
		&premium,
		&e.Coverage,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		return insurance.Entry{}, err
	}

	if premium.Valid {
		v := premium.Float64
		e.Premium = &v
	}

	return e, nil
}
