package vote

import (
	"context"
	"errors"

	voteerrors "hiringlens/internal/vote/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VoteResult struct {
	Voted bool  `json:"voted"`
	Count int64 `json:"count"`
}

//go:generate mockgen -source=vote_service.go -destination=mock/vote_service_mock.go -package=mock
type Service interface {
	Toggle(ctx context.Context, actorID, interviewID string) (VoteResult, error)
	Get(ctx context.Context, actorID, interviewID string) (VoteResult, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("vote.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vote.service")
	}
	return &service{repo: repo, logger: l}
}

// Toggle adds the actor's helpful vote, or removes it when one is
// already present. Returns the state after the flip.
func (s *service) Toggle(ctx context.Context, actorID, interviewID string) (VoteResult, error) {
	if actorID == "" {
		return VoteResult{}, voteerrors.ErrUnauthenticated
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return VoteResult{}, voteerrors.ErrUnauthenticated
	}
	reviewUUID, err := uuid.Parse(interviewID)
	if err != nil {
		return VoteResult{}, voteerrors.ErrInvalidInterviewID
	}

	exists, err := s.repo.InterviewExists(ctx, interviewID)
	if err != nil {
		return VoteResult{}, err
	}
	if !exists {
		return VoteResult{}, voteerrors.ErrInterviewNotFound
	}

	voted := false
	_, err = s.repo.Find(ctx, interviewID, actorID)
	switch {
	case err == nil:
		if err := s.repo.Delete(ctx, interviewID, actorID); err != nil {
			s.logger.Error("remove vote failed", zap.String("interview_id", interviewID), zap.Error(err))
			return VoteResult{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		v := &Vote{
			ID:          uuid.New(),
			InterviewID: reviewUUID,
			UserID:      actorUUID,
		}
		if err := s.repo.Create(ctx, v); err != nil {
			// A double-click can race the Find; the unique pair index
			// means the vote is already there, which is the state the
			// actor asked for.
			var pgErr *pgconn.PgError
			if !errors.As(err, &pgErr) || pgErr.Code != "23505" {
				s.logger.Error("create vote failed", zap.String("interview_id", interviewID), zap.Error(err))
				return VoteResult{}, err
			}
		}
		voted = true
	default:
		return VoteResult{}, err
	}

	count, err := s.repo.CountByInterview(ctx, interviewID)
	if err != nil {
		return VoteResult{}, err
	}

	return VoteResult{Voted: voted, Count: count}, nil
}

func (s *service) Get(ctx context.Context, actorID, interviewID string) (VoteResult, error) {
	if _, err := uuid.Parse(interviewID); err != nil {
		return VoteResult{}, voteerrors.ErrInvalidInterviewID
	}

	count, err := s.repo.CountByInterview(ctx, interviewID)
	if err != nil {
		return VoteResult{}, err
	}

	result := VoteResult{Count: count}
	if actorID != "" {
		if _, err := s.repo.Find(ctx, interviewID, actorID); err == nil {
			result.Voted = true
		}
	}

	return result, nil
}
