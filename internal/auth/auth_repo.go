package auth

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=auth_repo.go -destination=mock/auth_repo_mock.go -package=mock
type Repository interface {
	GetByUsername(ctx context.Context, username string) (*Account, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	var acc Account
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		Take(&acc).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}
