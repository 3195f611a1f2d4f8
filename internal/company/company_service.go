package company

import (
	"context"
	"errors"
	"strings"

	companyerrors "hiringlens/internal/company/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=company_service.go -destination=mock/company_service_mock.go -package=mock
type Service interface {
	ResolveOrCreate(ctx context.Context, name string) (*Company, error)
	FindBySlug(ctx context.Context, slug string) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*CompanyResponse, error)
	List(ctx context.Context, page, pageSize int) ([]CompanyResponse, int64, error)
	Search(ctx context.Context, query, industry string, limit int) ([]SearchResultResponse, error)
	Compare(ctx context.Context, slugs []string) ([]CompanyResponse, error)
	Update(ctx context.Context, slug string, req UpdateCompanyRequest) (*CompanyResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("company.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("company.service")
	}
	return &service{repo: repo, logger: l}
}

// ResolveOrCreate looks a company up by the slug of its name and
// creates it when no match exists. First submission for an unknown
// company name is what brings the company row into existence.
func (s *service) ResolveOrCreate(ctx context.Context, name string) (*Company, error) {
	slug := Slugify(name)
	if slug == "" {
		return nil, companyerrors.ErrInvalidCompanyName
	}

	comp, err := s.repo.GetBySlug(ctx, slug)
	if err == nil {
		return comp, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	comp = &Company{
		Name: strings.TrimSpace(name),
		Slug: slug,
	}
	if err := s.repo.Create(ctx, comp); err != nil {
		// A concurrent submit may have created the slug between the
		// lookup and the insert; re-read rather than fail.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return s.repo.GetBySlug(ctx, slug)
		}
		s.logger.Error("create company failed", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}

	s.logger.Info("company created", zap.String("slug", slug), zap.String("company_id", comp.ID.String()))
	return comp, nil
}

// FindBySlug returns the bare entity for other services that need the
// company row rather than its API shape.
func (s *service) FindBySlug(ctx context.Context, slug string) (*Company, error) {
	comp, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}
	return comp, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*CompanyResponse, error) {
	comp, err := s.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	resp := mapToResponse(comp)
	return &resp, nil
}

func (s *service) List(ctx context.Context, page, pageSize int) ([]CompanyResponse, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	companies, total, err := s.repo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, err
	}

	return mapToListResponse(companies), total, nil
}

func (s *service) Search(ctx context.Context, query, industry string, limit int) ([]SearchResultResponse, error) {
	if limit < 1 || limit > 50 {
		limit = 20
	}

	rows, err := s.repo.Search(ctx, strings.TrimSpace(query), strings.TrimSpace(industry), limit)
	if err != nil {
		s.logger.Error("company search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	resp := make([]SearchResultResponse, len(rows))
	for i, row := range rows {
		resp[i] = SearchResultResponse{
			CompanyResponse: mapToResponse(&row.Company),
			ReviewCount:     row.ReviewCount,
		}
	}
	return resp, nil
}

func (s *service) Compare(ctx context.Context, slugs []string) ([]CompanyResponse, error) {
	cleaned := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug != "" {
			cleaned = append(cleaned, slug)
		}
	}
	if len(cleaned) == 0 {
		return nil, companyerrors.ErrInvalidSlug
	}

	companies, err := s.repo.GetBySlugs(ctx, cleaned)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(companies), nil
}

func (s *service) Update(ctx context.Context, slug string, req UpdateCompanyRequest) (*CompanyResponse, error) {
	comp, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, companyerrors.ErrCompanyNotFound
		}
		return nil, err
	}

	if req.Industry != "" {
		comp.Industry = req.Industry
	}
	if req.Location != "" {
		comp.Location = req.Location
	}
	if req.LogoURL != "" {
		comp.LogoURL = req.LogoURL
	}
	if req.WebsiteURL != "" {
		comp.WebsiteURL = req.WebsiteURL
	}

	if err := s.repo.Update(ctx, comp); err != nil {
		return nil, err
	}

	resp := mapToResponse(comp)
	return &resp, nil
}

func mapToResponse(c *Company) CompanyResponse {
	return CompanyResponse{
		ID:         c.ID.String(),
		Name:       c.Name,
		Slug:       c.Slug,
		Industry:   c.Industry,
		Location:   c.Location,
		LogoURL:    c.LogoURL,
		WebsiteURL: c.WebsiteURL,
	}
}

func mapToListResponse(companies []Company) []CompanyResponse {
	resp := make([]CompanyResponse, len(companies))
	for i, c := range companies {
		resp[i] = mapToResponse(&c)
	}
	return resp
}
