package score

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"hiringlens/internal/company"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	ScoreKeyPrefix = "scores:company:"
	scoreCacheTTL  = 10 * time.Minute
)

func ScoreCacheKey(companyID string) string {
	return ScoreKeyPrefix + companyID
}

// CompanyDirectory resolves slugs to company rows.
type CompanyDirectory interface {
	FindBySlug(ctx context.Context, slug string) (*company.Company, error)
}

//go:generate mockgen -source=score_service.go -destination=mock/score_service_mock.go -package=mock
type Service interface {
	GetForCompanySlug(ctx context.Context, slug string) (*CompanyScore, error)
	Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error)
	InvalidateCompany(ctx context.Context, companyID string)
}

type service struct {
	repo      Repository
	companies CompanyDirectory
	rdb       *redis.Client
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(repo Repository, companies CompanyDirectory, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("score.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("score.service")
	}
	return &service{
		repo:      repo,
		companies: companies,
		rdb:       rdb,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) GetForCompanySlug(ctx context.Context, slug string) (*CompanyScore, error) {
	comp, err := s.companies.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.getForCompanyID(ctx, comp.ID.String())
}

func (s *service) getForCompanyID(ctx context.Context, companyID string) (*CompanyScore, error) {
	cacheKey := ScoreCacheKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var cs CompanyScore
			if json.Unmarshal([]byte(cached), &cs) == nil {
				return &cs, nil
			}
		}
	}

	// Collapse concurrent recomputes for the same company.
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		reviews, err := s.repo.ApprovedByCompany(ctx, companyID)
		if err != nil {
			return nil, err
		}

		cs := Compute(companyID, reviews)

		if s.rdb != nil {
			if jsonData, err := json.Marshal(cs); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, scoreCacheTTL)
			}
		}

		return &cs, nil
	})
	if err != nil {
		s.logger.Error("compute company score failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}

	return v.(*CompanyScore), nil
}

func (s *service) Leaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}

	refs, err := s.repo.CompaniesWithApproved(ctx, limit*2)
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(refs))
	for _, ref := range refs {
		cs, err := s.getForCompanyID(ctx, ref.ID.String())
		if err != nil {
			s.logger.Warn("leaderboard score skipped",
				zap.String("company_id", ref.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if cs.Score == nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{
			CompanyID:   ref.ID.String(),
			Name:        ref.Name,
			Slug:        ref.Slug,
			ReviewCount: cs.ReviewCount,
			Score:       cs.Score,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return *entries[i].Score > *entries[j].Score
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}

// InvalidateCompany drops the cached score after the approved-review
// set changes. Best effort: a stale entry only lives until the TTL.
func (s *service) InvalidateCompany(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}

	cacheKey := ScoreCacheKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate score cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}
