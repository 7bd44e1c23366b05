package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-health-api/internal/domain/records"
)

type RecordsRepo struct {
	db *sql.DB
}

func NewRecordsRepo(db *sql.DB) *RecordsRepo {
	return &RecordsRepo{db: db}
}

func (r *RecordsRepo) Create(ctx context.Context, rec records.HealthRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (
			id, cat_id,
			type, date, description, notes, file_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		rec.ID,
		rec.CatID,
		string(rec.Type),
		rec.Date,
		rec.Description,
		rec.Notes,
		rec.FileURL,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *RecordsRepo) GetByID(ctx context.Context, id string) (records.HealthRecord, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return records.HealthRecord{}, records.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, cat_id,
			type, date, description, notes, file_url,
			created_at, updated_at
		FROM health_records
		WHERE id = $1
	`, id)

	rec, err := scanRecord(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return records.HealthRecord{}, records.ErrNotFound
		}
		return records.HealthRecord{}, err
	}
	return rec, nil
}

func (r *RecordsRepo) ListByCat(ctx context.Context, catID string) ([]records.HealthRecord, error) {
	catID = strings.TrimSpace(catID)
	if catID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, cat_id,
			type, date, description, notes, file_url,
			created_at, updated_at
		FROM health_records
		WHERE cat_id = $1
		ORDER BY date DESC
	`, catID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]records.HealthRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}

	return out, rows.Err()
}

func (r *RecordsRepo) Update(ctx context.Context, rec records.HealthRecord) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_records
		SET
			type = $2,
			date = $3,
			description = $4,
			notes = $5,
			file_url = $6,
			updated_at = $7
		WHERE id = $1
	`,
		rec.ID,
		string(rec.Type),
		rec.Date,
		rec.Description,
		rec.Notes,
		rec.FileURL,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *RecordsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM health_records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func scanRecord(scan func(dest ...any) error) (records.HealthRecord, error) {
	var rec records.HealthRecord
	var typ string

	if err := scan(
		&rec.ID,
		&rec.CatID,
		&typ,
		&rec.Date,
		&rec.Description,
		&rec.Notes,
		&rec.FileURL,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return records.HealthRecord{}, err
	}

	rec.Type = records.RecordType(typ)
	return rec, nil
}
