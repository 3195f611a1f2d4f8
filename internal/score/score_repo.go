package score

import (
	"context"

	"hiringlens/internal/interview"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CompanyRef struct {
	ID   uuid.UUID
	Name string
	Slug string
}

//go:generate mockgen -source=score_repo.go -destination=mock/score_repo_mock.go -package=mock
type Repository interface {
	ApprovedByCompany(ctx context.Context, companyID string) ([]interview.Interview, error)
	CompaniesWithApproved(ctx context.Context, limit int) ([]CompanyRef, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ApprovedByCompany(ctx context.Context, companyID string) ([]interview.Interview, error) {
	var reviews []interview.Interview
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, interview.StatusApproved).
		Find(&reviews).Error
	return reviews, err
}

func (r *repository) CompaniesWithApproved(ctx context.Context, limit int) ([]CompanyRef, error) {
	var refs []CompanyRef
	err := r.db.WithContext(ctx).
		Table("companies").
		Select("companies.id, companies.name, companies.slug").
		Joins("JOIN interviews ON interviews.company_id = companies.id AND interviews.status = ?", interview.StatusApproved).
		Group("companies.id, companies.name, companies.slug").
		Order("COUNT(interviews.id) DESC").
		Limit(limit).
		Scan(&refs).Error
	return refs, err
}
