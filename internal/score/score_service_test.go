package score_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"hiringlens/internal/company"
	"hiringlens/internal/interview"
	"hiringlens/internal/score"

	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeScoreRepository struct {
	approvedByCompanyFn     func(ctx context.Context, companyID string) ([]interview.Interview, error)
	companiesWithApprovedFn func(ctx context.Context, limit int) ([]score.CompanyRef, error)
	calls                   int
}

func (f *fakeScoreRepository) ApprovedByCompany(ctx context.Context, companyID string) ([]interview.Interview, error) {
	f.calls++
	if f.approvedByCompanyFn != nil {
		return f.approvedByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeScoreRepository) CompaniesWithApproved(ctx context.Context, limit int) ([]score.CompanyRef, error) {
	if f.companiesWithApprovedFn != nil {
		return f.companiesWithApprovedFn(ctx, limit)
	}
	return nil, nil
}

type fakeCompanyDirectory struct {
	findBySlugFn func(ctx context.Context, slug string) (*company.Company, error)
}

func (f *fakeCompanyDirectory) FindBySlug(ctx context.Context, slug string) (*company.Company, error) {
	if f.findBySlugFn != nil {
		return f.findBySlugFn(ctx, slug)
	}
	return &company.Company{ID: uuid.New(), Slug: slug}, nil
}

func TestScoreService_GetForCompanySlug(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()

	t.Run("computes and caches on miss", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		repo := &fakeScoreRepository{
			approvedByCompanyFn: func(ctx context.Context, cid string) ([]interview.Interview, error) {
				assert.Equal(t, companyID.String(), cid)
				return []interview.Interview{review(4)}, nil
			},
		}
		dir := &fakeCompanyDirectory{
			findBySlugFn: func(ctx context.Context, slug string) (*company.Company, error) {
				return &company.Company{ID: companyID, Slug: slug}, nil
			},
		}
		svc := score.NewService(repo, dir, rdb)

		cacheKey := score.ScoreCacheKey(companyID.String())
		redisMock.ExpectGet(cacheKey).RedisNil()
		redisMock.Regexp().ExpectSet(cacheKey, `.*`, 10*time.Minute).SetVal("OK")

		cs, err := svc.GetForCompanySlug(ctx, "acme-corp")

		assert.NoError(t, err)
		assert.NotNil(t, cs.Score)
		assert.Equal(t, 75.0, *cs.Score)
		assert.Equal(t, 1, repo.calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("serves from cache without recomputing", func(t *testing.T) {
		rdb, redisMock := redismock.NewClientMock()

		repo := &fakeScoreRepository{}
		dir := &fakeCompanyDirectory{
			findBySlugFn: func(ctx context.Context, slug string) (*company.Company, error) {
				return &company.Company{ID: companyID, Slug: slug}, nil
			},
		}
		svc := score.NewService(repo, dir, rdb)

		cachedScore := 88.5
		cached, _ := json.Marshal(score.CompanyScore{
			CompanyID:   companyID.String(),
			ReviewCount: 7,
			Score:       &cachedScore,
		})
		redisMock.ExpectGet(score.ScoreCacheKey(companyID.String())).SetVal(string(cached))

		cs, err := svc.GetForCompanySlug(ctx, "acme-corp")

		assert.NoError(t, err)
		assert.Equal(t, 88.5, *cs.Score)
		assert.Equal(t, 0, repo.calls)
		assert.NoError(t, redisMock.ExpectationsWereMet())
	})

	t.Run("works without redis", func(t *testing.T) {
		repo := &fakeScoreRepository{
			approvedByCompanyFn: func(ctx context.Context, cid string) ([]interview.Interview, error) {
				return []interview.Interview{review(5)}, nil
			},
		}
		svc := score.NewService(repo, &fakeCompanyDirectory{}, nil)

		cs, err := svc.GetForCompanySlug(ctx, "acme-corp")

		assert.NoError(t, err)
		assert.Equal(t, 100.0, *cs.Score)
	})
}

func TestScoreService_InvalidateCompany(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New().String()

	rdb, redisMock := redismock.NewClientMock()
	svc := score.NewService(&fakeScoreRepository{}, &fakeCompanyDirectory{}, rdb)

	redisMock.ExpectDel(score.ScoreCacheKey(companyID)).SetVal(1)

	svc.InvalidateCompany(ctx, companyID)

	assert.NoError(t, redisMock.ExpectationsWereMet())
}

func TestScoreService_Leaderboard(t *testing.T) {
	ctx := context.Background()

	t.Run("orders by score and skips empty companies", func(t *testing.T) {
		goodID := uuid.New()
		badID := uuid.New()
		emptyID := uuid.New()

		repo := &fakeScoreRepository{
			companiesWithApprovedFn: func(ctx context.Context, limit int) ([]score.CompanyRef, error) {
				return []score.CompanyRef{
					{ID: badID, Name: "Ghosters Inc", Slug: "ghosters-inc"},
					{ID: goodID, Name: "Acme Corp", Slug: "acme-corp"},
					{ID: emptyID, Name: "New Co", Slug: "new-co"},
				}, nil
			},
			approvedByCompanyFn: func(ctx context.Context, cid string) ([]interview.Interview, error) {
				switch cid {
				case goodID.String():
					return []interview.Interview{review(5)}, nil
				case badID.String():
					return []interview.Interview{review(2, func(r *interview.Interview) { r.Ghosted = true })}, nil
				default:
					return nil, nil
				}
			},
		}
		svc := score.NewService(repo, &fakeCompanyDirectory{}, nil)

		entries, err := svc.Leaderboard(ctx, 10)

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.Equal(t, "acme-corp", entries[0].Slug)
		assert.Equal(t, "ghosters-inc", entries[1].Slug)
	})
}
