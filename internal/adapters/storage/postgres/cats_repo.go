package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"cat-health-api/internal/domain/cats"
)

type CatsRepo struct {
	db *sql.DB
}

func NewCatsRepo(db *sql.DB) *CatsRepo {
	return &CatsRepo{db: db}
}

func (r *CatsRepo) Create(ctx context.Context, c cats.Cat) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cats (
			id, owner_user_id,
			name, breed, age, weight,
			description, image_url,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		c.ID,
		c.OwnerUserID,
		c.Name,
		c.Breed,
		toNullInt(c.Age),
		toNullFloat(c.Weight),
		c.Description,
		c.ImageURL,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

func (r *CatsRepo) GetByID(ctx context.Context, id string) (cats.Cat, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cats.Cat{}, cats.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			name, breed, age, weight,
			description, image_url,
			created_at, updated_at
		FROM cats
		WHERE id = $1
	`, id)

	c, err := scanCat(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cats.Cat{}, cats.ErrNotFound
		}
		return cats.Cat{}, err
	}
	return c, nil
}

func (r *CatsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]cats.Cat, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			name, breed, age, weight,
			description, image_url,
			created_at, updated_at
		FROM cats
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]cats.Cat, 0)
	for rows.Next() {
		c, err := scanCat(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}

	return out, rows.Err()
}

func (r *CatsRepo) Update(ctx context.Context, c cats.Cat) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cats
		SET
			name = $2,
			breed = $3,
			age = $4,
			weight = $5,
			description = $6,
			image_url = $7,
			updated_at = $8
		WHERE id = $1
	`,
		c.ID,
		c.Name,
		c.Breed,
		toNullInt(c.Age),
		toNullFloat(c.Weight),
		c.Description,
		c.ImageURL,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func (r *CatsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cats WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return cats.ErrNotFound
	}
	return nil
}

func scanCat(scan func(dest ...any) error) (cats.Cat, error) {
	var c cats.Cat
	var age sql.NullInt64
	var weight sql.NullFloat64

	if err := scan(
		&c.ID,
		&c.OwnerUserID,
		&c.Name,
		&c.Breed,
		&age,
		&weight,
		&c.Description,
		&c.ImageURL,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return cats.Cat{}, err
	}

	if age.Valid {
		v := int(age.Int64)
		c.Age = &v
	}
	if weight.Valid {
		v := weight.Float64
		c.Weight = &v
	}

	return c, nil
}
