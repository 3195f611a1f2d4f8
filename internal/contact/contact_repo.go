package contact

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=contact_repo.go -destination=mock/contact_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, msg *ContactMessage) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, msg *ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}
