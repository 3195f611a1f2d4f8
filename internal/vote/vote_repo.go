package vote

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

//go:generate mockgen -source=vote_repo.go -destination=mock/vote_repo_mock.go -package=mock
type Repository interface {
	Find(ctx context.Context, interviewID, userID string) (*Vote, error)
	Create(ctx context.Context, v *Vote) error
	Delete(ctx context.Context, interviewID, userID string) error
	CountByInterview(ctx context.Context, interviewID string) (int64, error)
	InterviewExists(ctx context.Context, interviewID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Find(ctx context.Context, interviewID, userID string) (*Vote, error) {
	var v Vote
	err := r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *repository) Create(ctx context.Context, v *Vote) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *repository) Delete(ctx context.Context, interviewID, userID string) error {
	return r.db.WithContext(ctx).
		Where("interview_id = ? AND user_id = ?", interviewID, userID).
		Delete(&Vote{}).Error
}

func (r *repository) CountByInterview(ctx context.Context, interviewID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Vote{}).
		Where("interview_id = ?", interviewID).
		Count(&count).Error
	return count, err
}

func (r *repository) InterviewExists(ctx context.Context, interviewID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("interviews").
		Where("id = ?", interviewID).
		Count(&count).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	return count > 0, nil
}
