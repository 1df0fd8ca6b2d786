package counter

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	// NextValue returns the next value of the (scope, key) sequence. floor is
	// the number of rows already present for that key. The first call returns
	// floor+1 and later calls never go below it.
	NextValue(ctx context.Context, scope, key string, floor int64) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) NextValue(ctx context.Context, scope, key string, floor int64) (int64, error) {
	var next int64

	// Single statement UPSERT so two concurrent callers never get the same value.
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO sequence_counters (scope, counter_key, last_value, updated_at)
		VALUES (?, ?, ? + 1, now())
		ON CONFLICT (scope, counter_key) DO UPDATE
		SET last_value = GREATEST(sequence_counters.last_value, EXCLUDED.last_value - 1) + 1,
		    updated_at = now()
		RETURNING last_value
	`, scope, key, floor).Scan(&next).Error
	if err != nil {
		return 0, err
	}

	return next, nil
}
