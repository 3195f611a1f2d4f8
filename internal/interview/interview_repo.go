package interview

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=interview_repo.go -destination=mock/interview_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, i *Interview) error
	FindByID(ctx context.Context, id string) (*Interview, error)
	Update(ctx context.Context, i *Interview) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error

	FindByOwner(ctx context.Context, ownerID string) ([]Interview, error)
	FindApprovedByCompany(ctx context.Context, companyID string) ([]Interview, error)
	FindRecentApproved(ctx context.Context, limit int) ([]Interview, error)
	FindPending(ctx context.Context) ([]Interview, error)
	FindFlaggedApproved(ctx context.Context) ([]FlaggedRow, error)

	CountByOwnerSince(ctx context.Context, ownerID string, since time.Time) (int64, error)
	OldestByOwnerSince(ctx context.Context, ownerID string, since time.Time) (*time.Time, error)

	CreateFlag(ctx context.Context, f *ModerationFlag) error
}

// FlaggedRow annotates an approved review with its derived flag count
// for the admin flagged queue.
type FlaggedRow struct {
	Interview
	FlagCount int64
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) Create(ctx context.Context, i *Interview) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*Interview, error) {
	var i Interview
	err := r.db.WithContext(ctx).
		Preload("Company").
		First(&i, "id = ?", id).Error
	return &i, err
}

func (r *repository) Update(ctx context.Context, i *Interview) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&Interview{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Interview{}, "id = ?", id).Error
}

func (r *repository) FindByOwner(ctx context.Context, ownerID string) ([]Interview, error) {
	var interviews []Interview
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("submitted_by = ?", ownerID).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

func (r *repository) FindApprovedByCompany(ctx context.Context, companyID string) ([]Interview, error) {
	var interviews []Interview
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Where("status = ?", StatusApproved).
		Order("created_at DESC").
		Find(&interviews).Error
	return interviews, err
}

func (r *repository) FindRecentApproved(ctx context.Context, limit int) ([]Interview, error) {
	var interviews []Interview
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", StatusApproved).
		Order("created_at DESC").
		Limit(limit).
		Find(&interviews).Error
	return interviews, err
}

func (r *repository) FindPending(ctx context.Context) ([]Interview, error) {
	var interviews []Interview
	err := r.db.WithContext(ctx).
		Preload("Company").
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Find(&interviews).Error
	return interviews, err
}

func (r *repository) FindFlaggedApproved(ctx context.Context) ([]FlaggedRow, error) {
	var rows []FlaggedRow
	err := r.db.WithContext(ctx).
		Table("interviews i").
		Select("i.*, COUNT(f.id) AS flag_count").
		Joins("JOIN moderation_flags f ON f.interview_id = i.id").
		Where("i.status = ?", StatusApproved).
		Group("i.id").
		Order("i.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) CountByOwnerSince(ctx context.Context, ownerID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Interview{}).
		Where("submitted_by = ?", ownerID).
		Where("created_at >= ?", since).
		Count(&count).Error
	return count, err
}

func (r *repository) OldestByOwnerSince(ctx context.Context, ownerID string, since time.Time) (*time.Time, error) {
	var i Interview
	err := r.db.WithContext(ctx).
		Where("submitted_by = ?", ownerID).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		First(&i).Error
	if err != nil {
		return nil, err
	}
	return &i.CreatedAt, nil
}

func (r *repository) CreateFlag(ctx context.Context, f *ModerationFlag) error {
	return r.db.WithContext(ctx).Create(f).Error
}
