package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_repo.go -destination=mock/company_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	GetBySlugs(ctx context.Context, slugs []string) ([]Company, error)
	List(ctx context.Context, offset, limit int) ([]Company, int64, error)
	Search(ctx context.Context, query, industry string, limit int) ([]SearchRow, error)
	Update(ctx context.Context, company *Company) error
}

// SearchRow carries a company plus its approved-review count for
// relevance ordering on the search page.
type SearchRow struct {
	Company
	ReviewCount int64
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error
	return &company, err
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&company).Error
	return &company, err
}

func (r *repository) GetBySlugs(ctx context.Context, slugs []string) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).
		Where("slug IN ?", slugs).
		Order("name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *repository) List(ctx context.Context, offset, limit int) ([]Company, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&Company{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var companies []Company
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&companies).Error
	return companies, total, err
}

// Search matches on name or industry and ranks by approved-review
// volume, mirroring the search_companies database function.
func (r *repository) Search(ctx context.Context, query, industry string, limit int) ([]SearchRow, error) {
	var rows []SearchRow

	db := r.db.WithContext(ctx).
		Table("companies c").
		Select("c.*, COUNT(i.id) AS review_count").
		Joins("LEFT JOIN interviews i ON i.company_id = c.id AND i.status = ?", "approved").
		Group("c.id").
		Order("review_count DESC, c.name ASC").
		Limit(limit)

	if query != "" {
		pattern := "%" + query + "%"
		db = db.Where("c.name ILIKE ? OR c.industry ILIKE ?", pattern, pattern)
	}
	if industry != "" {
		db = db.Where("c.industry = ?", industry)
	}

	err := db.Scan(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}
