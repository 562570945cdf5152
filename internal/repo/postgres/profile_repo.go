package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/amandanordqvist/datingapp/internal/domain/model"
)

var ErrProfileNotFound = errors.New("profile not found")

type ProfileRepo struct {
	pool *pgxpool.Pool
}

func NewProfileRepo(pool *pgxpool.Pool) *ProfileRepo {
	return &ProfileRepo{pool: pool}
}

func (r *ProfileRepo) Page(ctx context.Context, offset, limit int) ([]model.Profile, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		return []model.Profile{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, name, age, images, bio, about, distance, location, job, education, interests
FROM profiles
ORDER BY id
OFFSET $1 LIMIT $2
`, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("query profile page: %w", err)
	}
	defer rows.Close()

	profiles := make([]model.Profile, 0, limit)
	for rows.Next() {
		var p model.Profile
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Age,
			&p.Images,
			&p.Bio,
			&p.About,
			&p.Distance,
			&p.Location,
			&p.Job,
			&p.Education,
			&p.Interests,
		); err != nil {
			return nil, fmt.Errorf("scan profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profile rows: %w", err)
	}

	return profiles, nil
}

func (r *ProfileRepo) Get(ctx context.Context, id string) (model.Profile, error) {
	if r.pool == nil {
		return model.Profile{}, fmt.Errorf("postgres pool is nil")
	}
	if id == "" {
		return model.Profile{}, ErrProfileNotFound
	}

	var p model.Profile
	err := r.pool.QueryRow(ctx, `
SELECT id, name, age, images, bio, about, distance, location, job, education, interests
FROM profiles
WHERE id = $1
LIMIT 1
`, id).Scan(
		&p.ID,
		&p.Name,
		&p.Age,
		&p.Images,
		&p.Bio,
		&p.About,
		&p.Distance,
		&p.Location,
		&p.Job,
		&p.Education,
		&p.Interests,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, ErrProfileNotFound
		}
		return model.Profile{}, fmt.Errorf("get profile: %w", err)
	}

	return p, nil
}

func (r *ProfileRepo) Upsert(ctx context.Context, p model.Profile) error {
	if r.pool == nil {
		return nil
	}
	if p.ID == "" {
		return fmt.Errorf("profile id is empty")
	}

	const query = `
INSERT INTO profiles (
	id,
	name,
	age,
	images,
	bio,
	about,
	distance,
	location,
	job,
	education,
	interests,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
ON CONFLICT (id) DO UPDATE SET
	name = EXCLUDED.name,
	age = EXCLUDED.age,
	images = EXCLUDED.images,
	bio = EXCLUDED.bio,
	about = EXCLUDED.about,
	distance = EXCLUDED.distance,
	location = EXCLUDED.location,
	job = EXCLUDED.job,
	education = EXCLUDED.education,
	interests = EXCLUDED.interests,
	updated_at = NOW()
`

	if _, err := r.pool.Exec(
		ctx,
		query,
		p.ID,
		p.Name,
		p.Age,
		p.Images,
		p.Bio,
		p.About,
		p.Distance,
		p.Location,
		p.Job,
		p.Education,
		p.Interests,
	); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
