package vote_test

import (
	"context"
	"testing"

	"hiringlens/internal/vote"
	voteerrors "hiringlens/internal/vote/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeVoteRepository struct {
	findFn            func(ctx context.Context, interviewID, userID string) (*vote.Vote, error)
	createFn          func(ctx context.Context, v *vote.Vote) error
	deleteFn          func(ctx context.Context, interviewID, userID string) error
	countFn           func(ctx context.Context, interviewID string) (int64, error)
	interviewExistsFn func(ctx context.Context, interviewID string) (bool, error)
}

func (f *fakeVoteRepository) Find(ctx context.Context, interviewID, userID string) (*vote.Vote, error) {
	if f.findFn != nil {
		return f.findFn(ctx, interviewID, userID)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeVoteRepository) Create(ctx context.Context, v *vote.Vote) error {
	if f.createFn != nil {
		return f.createFn(ctx, v)
	}
	return nil
}

func (f *fakeVoteRepository) Delete(ctx context.Context, interviewID, userID string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, interviewID, userID)
	}
	return nil
}

func (f *fakeVoteRepository) CountByInterview(ctx context.Context, interviewID string) (int64, error) {
	if f.countFn != nil {
		return f.countFn(ctx, interviewID)
	}
	return 0, nil
}

func (f *fakeVoteRepository) InterviewExists(ctx context.Context, interviewID string) (bool, error) {
	if f.interviewExistsFn != nil {
		return f.interviewExistsFn(ctx, interviewID)
	}
	return true, nil
}

func TestVoteService_Toggle(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New().String()
	reviewID := uuid.New().String()

	t.Run("first toggle adds the vote", func(t *testing.T) {
		var created *vote.Vote
		repo := &fakeVoteRepository{
			createFn: func(ctx context.Context, v *vote.Vote) error {
				created = v
				return nil
			},
			countFn: func(ctx context.Context, interviewID string) (int64, error) {
				return 1, nil
			},
		}
		svc := vote.NewService(repo)

		result, err := svc.Toggle(ctx, actorID, reviewID)

		assert.NoError(t, err)
		assert.True(t, result.Voted)
		assert.Equal(t, int64(1), result.Count)
		assert.NotNil(t, created)
		assert.Equal(t, uuid.MustParse(actorID), created.UserID)
	})

	t.Run("second toggle removes the vote", func(t *testing.T) {
		deleted := false
		repo := &fakeVoteRepository{
			findFn: func(ctx context.Context, interviewID, userID string) (*vote.Vote, error) {
				return &vote.Vote{ID: uuid.New()}, nil
			},
			deleteFn: func(ctx context.Context, interviewID, userID string) error {
				deleted = true
				return nil
			},
			countFn: func(ctx context.Context, interviewID string) (int64, error) {
				return 0, nil
			},
		}
		svc := vote.NewService(repo)

		result, err := svc.Toggle(ctx, actorID, reviewID)

		assert.NoError(t, err)
		assert.True(t, deleted)
		assert.False(t, result.Voted)
		assert.Equal(t, int64(0), result.Count)
	})

	t.Run("negative anonymous", func(t *testing.T) {
		svc := vote.NewService(&fakeVoteRepository{})

		_, err := svc.Toggle(ctx, "", reviewID)

		assert.ErrorIs(t, err, voteerrors.ErrUnauthenticated)
	})

	t.Run("negative unknown review", func(t *testing.T) {
		repo := &fakeVoteRepository{
			interviewExistsFn: func(ctx context.Context, interviewID string) (bool, error) {
				return false, nil
			},
		}
		svc := vote.NewService(repo)

		_, err := svc.Toggle(ctx, actorID, reviewID)

		assert.ErrorIs(t, err, voteerrors.ErrInterviewNotFound)
	})
}

func TestVoteService_Get(t *testing.T) {
	ctx := context.Background()
	reviewID := uuid.New().String()

	t.Run("anonymous reader sees the count only", func(t *testing.T) {
		repo := &fakeVoteRepository{
			countFn: func(ctx context.Context, interviewID string) (int64, error) {
				return 3, nil
			},
		}
		svc := vote.NewService(repo)

		result, err := svc.Get(ctx, "", reviewID)

		assert.NoError(t, err)
		assert.Equal(t, int64(3), result.Count)
		assert.False(t, result.Voted)
	})

	t.Run("signed-in voter sees their own vote", func(t *testing.T) {
		repo := &fakeVoteRepository{
			findFn: func(ctx context.Context, interviewID, userID string) (*vote.Vote, error) {
				return &vote.Vote{ID: uuid.New()}, nil
			},
			countFn: func(ctx context.Context, interviewID string) (int64, error) {
				return 3, nil
			},
		}
		svc := vote.NewService(repo)

		result, err := svc.Get(ctx, uuid.New().String(), reviewID)

		assert.NoError(t, err)
		assert.True(t, result.Voted)
	})
}
