package matching

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetProfile(ctx context.Context, uid string) (*UserProfile, error) {
	var profile UserProfile
	query := `
        SELECT uid, name, age, gender, deficit,
               location_lat, location_lon, location_updated_at,
               day_count, is_matching_active, created_at
        FROM profiles
        WHERE uid = $1
    `

	err := r.db.GetContext(ctx, &profile, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *postgresRepository) FindEligible(ctx context.Context, gender string, excludeUID string) ([]*UserProfile, error) {
	var pool []*UserProfile
	query := `
        SELECT uid, name, age, gender, deficit,
               location_lat, location_lon, location_updated_at,
               day_count, is_matching_active, created_at
        FROM profiles
        WHERE gender = $1
          AND is_matching_active = TRUE
          AND uid <> $2
        ORDER BY uid
    `

	if err := r.db.SelectContext(ctx, &pool, query, gender, excludeUID); err != nil {
		return nil, err
	}

	return pool, nil
}

func (r *postgresRepository) SetMatchingActive(ctx context.Context, uid string, active bool) error {
	query := `UPDATE profiles SET is_matching_active = $2 WHERE uid = $1`

	_, err := r.db.ExecContext(ctx, query, uid, active)
	return err
}
