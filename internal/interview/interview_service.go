package interview

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"hiringlens/internal/company"
	"hiringlens/internal/events"
	interviewerrors "hiringlens/internal/interview/errors"
	"hiringlens/internal/messaging/kafka"
	"hiringlens/internal/shared/apperror"
	"hiringlens/internal/shared/contextutil"
	"hiringlens/internal/shared/pagecache"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	submissionLimit  = 3
	submissionWindow = 24 * time.Hour
)

// CompanyResolver is the slice of the company service this module needs.
type CompanyResolver interface {
	ResolveOrCreate(ctx context.Context, name string) (*company.Company, error)
	FindBySlug(ctx context.Context, slug string) (*company.Company, error)
}

// AdminChecker re-verifies the admin capability flag against the
// profile row; the route middleware alone is not the source of truth.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// ScoreInvalidator busts the cached Reality Score for a company
// whenever its approved-review set changes.
type ScoreInvalidator interface {
	InvalidateCompany(ctx context.Context, companyID string)
}

//go:generate mockgen -source=interview_service.go -destination=mock/interview_service_mock.go -package=mock
type Service interface {
	Submit(ctx context.Context, actorID string, req SubmitInterviewRequest) (InterviewResponse, error)
	Edit(ctx context.Context, actorID, id string, req SubmitInterviewRequest) (InterviewResponse, error)
	Delete(ctx context.Context, actorID, id string) error
	Approve(ctx context.Context, adminID, id string) (InterviewResponse, error)
	Reject(ctx context.Context, adminID, id string) (InterviewResponse, error)
	Flag(ctx context.Context, id, reason string) error

	ListMine(ctx context.Context, actorID string) ([]InterviewResponse, error)
	ListRecent(ctx context.Context, limit int) ([]InterviewResponse, error)
	ListApprovedForCompany(ctx context.Context, slug string) ([]InterviewResponse, error)
	ListPendingQueue(ctx context.Context) ([]InterviewResponse, error)
	ListFlaggedQueue(ctx context.Context) ([]InterviewResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	companies CompanyResolver
	admins    AdminChecker
	outbox    kafka.OutboxRepository
	pages     pagecache.Invalidator
	scores    ScoreInvalidator
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	companies CompanyResolver,
	admins AdminChecker,
	outboxRepo kafka.OutboxRepository,
	pages pagecache.Invalidator,
	scores ScoreInvalidator,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("interview.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("interview.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		companies: companies,
		admins:    admins,
		outbox:    outboxRepo,
		pages:     pages,
		scores:    scores,
		logger:    l,
	}
}

func validateEnums(req SubmitInterviewRequest) error {
	if !isOneOf(req.Seniority, Seniorities) {
		return interviewerrors.ErrInvalidSeniority
	}
	if !isOneOf(req.InterviewType, InterviewTypes) {
		return interviewerrors.ErrInvalidInterviewType
	}
	if !isOneOf(req.Outcome, Outcomes) {
		return interviewerrors.ErrInvalidOutcome
	}
	return nil
}

func (s *service) checkSubmissionLimit(ctx context.Context, actorID string) error {
	since := time.Now().UTC().Add(-submissionWindow)

	count, err := s.repo.CountByOwnerSince(ctx, actorID, since)
	if err != nil {
		return err
	}
	if count < submissionLimit {
		return nil
	}

	retryMsg := "Submission limit reached: at most 3 reviews per 24 hours."
	if oldest, err := s.repo.OldestByOwnerSince(ctx, actorID, since); err == nil && oldest != nil {
		retryAt := oldest.Add(submissionWindow).UTC()
		retryMsg = fmt.Sprintf(
			"Submission limit reached: at most 3 reviews per 24 hours. Try again after %s.",
			retryAt.Format(time.RFC1123),
		)
	}

	s.logger.Warn("submission rate limit hit",
		zap.String("actor_id", actorID),
		zap.Int64("recent_count", count),
	)
	return apperror.New(apperror.CodeRateLimited, retryMsg, http.StatusTooManyRequests)
}

func (s *service) Submit(ctx context.Context, actorID string, req SubmitInterviewRequest) (InterviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit review requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("company_name", req.CompanyName),
	)

	if actorID == "" {
		return InterviewResponse{}, interviewerrors.ErrUnauthenticated
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return InterviewResponse{}, interviewerrors.ErrInvalidActorID
	}
	if err := validateEnums(req); err != nil {
		return InterviewResponse{}, err
	}

	if err := s.checkSubmissionLimit(ctx, actorID); err != nil {
		return InterviewResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit review begin tx failed", zap.Error(err))
		return InterviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp, err := s.companies.ResolveOrCreate(ctx, req.CompanyName)
	if err != nil {
		return InterviewResponse{}, err
	}

	followUps, err := marshalFollowUps(req.FollowUpAnswers)
	if err != nil {
		return InterviewResponse{}, err
	}

	i := &Interview{
		ID:                    uuid.New(),
		CompanyID:             comp.ID,
		RoleTitle:             req.RoleTitle,
		Seniority:             req.Seniority,
		InterviewType:         req.InterviewType,
		Outcome:               req.Outcome,
		StagesCount:           req.StagesCount,
		TotalDurationDays:     req.TotalDurationDays,
		RatingProfessionalism: req.RatingProfessionalism,
		RatingCommunication:   req.RatingCommunication,
		RatingClarity:         req.RatingClarity,
		RatingFairness:        req.RatingFairness,
		ReceivedFeedback:      req.ReceivedFeedback,
		UnpaidTask:            req.UnpaidTask,
		Ghosted:               req.Ghosted,
		InterviewerLate:       req.InterviewerLate,
		ExceededTimeline:      req.ExceededTimeline,
		OverallComments:       req.OverallComments,
		CandidateTip:          req.CandidateTip,
		FollowUpAnswers:       followUps,
		SubmittedBy:           actorUUID,
		Status:                StatusPending,
	}

	if err := qtx.Create(ctx, i); err != nil {
		s.logger.Error("submit review persist failed", zap.Error(err))
		return InterviewResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.InterviewSubmitted, i, comp.Slug); err != nil {
		return InterviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit review commit failed", zap.Error(err))
		return InterviewResponse{}, err
	}

	// The new review is pending, so the company page stays untouched.
	s.pages.Invalidate(ctx, pagecache.KeyHome, pagecache.KeyRecent, pagecache.KeyAdminPending)

	s.logger.Info("submit review success",
		zap.String("request_id", rid),
		zap.String("interview_id", i.ID.String()),
		zap.String("company_slug", comp.Slug),
	)

	i.Company = comp
	return mapToResponse(*i), nil
}

func (s *service) Edit(ctx context.Context, actorID, id string, req SubmitInterviewRequest) (InterviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("edit review requested",
		zap.String("request_id", rid),
		zap.String("actor_id", actorID),
		zap.String("interview_id", id),
	)

	if actorID == "" {
		return InterviewResponse{}, interviewerrors.ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return InterviewResponse{}, interviewerrors.ErrInvalidInterviewID
	}
	if err := validateEnums(req); err != nil {
		return InterviewResponse{}, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InterviewResponse{}, interviewerrors.ErrInterviewNotFound
		}
		return InterviewResponse{}, err
	}
	if existing.SubmittedBy.String() != actorID {
		return InterviewResponse{}, interviewerrors.ErrNotOwner
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("edit review begin tx failed", zap.Error(err))
		return InterviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	comp, err := s.companies.ResolveOrCreate(ctx, req.CompanyName)
	if err != nil {
		return InterviewResponse{}, err
	}

	followUps, err := marshalFollowUps(req.FollowUpAnswers)
	if err != nil {
		return InterviewResponse{}, err
	}

	wasApproved := existing.Status == StatusApproved
	previousCompanyID := existing.CompanyID
	previousSlug := ""
	if existing.Company != nil {
		previousSlug = existing.Company.Slug
	}

	existing.CompanyID = comp.ID
	existing.RoleTitle = req.RoleTitle
	existing.Seniority = req.Seniority
	existing.InterviewType = req.InterviewType
	existing.Outcome = req.Outcome
	existing.StagesCount = req.StagesCount
	existing.TotalDurationDays = req.TotalDurationDays
	existing.RatingProfessionalism = req.RatingProfessionalism
	existing.RatingCommunication = req.RatingCommunication
	existing.RatingClarity = req.RatingClarity
	existing.RatingFairness = req.RatingFairness
	existing.ReceivedFeedback = req.ReceivedFeedback
	existing.UnpaidTask = req.UnpaidTask
	existing.Ghosted = req.Ghosted
	existing.InterviewerLate = req.InterviewerLate
	existing.ExceededTimeline = req.ExceededTimeline
	existing.OverallComments = req.OverallComments
	existing.CandidateTip = req.CandidateTip
	existing.FollowUpAnswers = followUps
	existing.Company = nil

	// Any edit requires re-review, whatever the prior state was.
	existing.Status = StatusPending

	if err := qtx.Update(ctx, existing); err != nil {
		s.logger.Error("edit review persist failed", zap.String("interview_id", id), zap.Error(err))
		return InterviewResponse{}, err
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.InterviewSubmitted, existing, comp.Slug); err != nil {
		return InterviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("edit review commit failed", zap.String("interview_id", id), zap.Error(err))
		return InterviewResponse{}, err
	}

	keys := []string{
		pagecache.KeyHome,
		pagecache.KeyRecent,
		pagecache.KeyAdminPending,
		pagecache.AccountKey(actorID),
		pagecache.CompanyKey(comp.Slug),
	}
	if previousSlug != "" && previousSlug != comp.Slug {
		keys = append(keys, pagecache.CompanyKey(previousSlug))
	}
	s.pages.Invalidate(ctx, keys...)

	// A previously approved review just left the approved set.
	if wasApproved {
		s.scores.InvalidateCompany(ctx, previousCompanyID.String())
	}

	s.logger.Info("edit review success",
		zap.String("request_id", rid),
		zap.String("interview_id", id),
	)

	existing.Company = comp
	return mapToResponse(*existing), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	s.logger.Debug("delete review requested",
		zap.String("actor_id", actorID),
		zap.String("interview_id", id),
	)

	if actorID == "" {
		return interviewerrors.ErrUnauthenticated
	}
	if _, err := uuid.Parse(id); err != nil {
		return interviewerrors.ErrInvalidInterviewID
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interviewerrors.ErrInterviewNotFound
		}
		return err
	}
	if existing.SubmittedBy.String() != actorID {
		return interviewerrors.ErrNotOwner
	}
	if existing.Status != StatusPending {
		return interviewerrors.ErrDeleteNonPending
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete review failed", zap.String("interview_id", id), zap.Error(err))
		return err
	}

	s.pages.Invalidate(ctx, pagecache.AccountKey(actorID))

	s.logger.Info("delete review success", zap.String("interview_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, adminID, id string) (InterviewResponse, error) {
	return s.moderate(ctx, adminID, id, StatusApproved)
}

func (s *service) Reject(ctx context.Context, adminID, id string) (InterviewResponse, error) {
	return s.moderate(ctx, adminID, id, StatusRejected)
}

// moderate applies an admin decision. Repeating a decision on a row
// already in the target state is a harmless no-op update.
func (s *service) moderate(ctx context.Context, adminID, id, targetStatus string) (InterviewResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("moderate review requested",
		zap.String("request_id", rid),
		zap.String("admin_id", adminID),
		zap.String("interview_id", id),
		zap.String("target_status", targetStatus),
	)

	if adminID == "" {
		return InterviewResponse{}, interviewerrors.ErrUnauthenticated
	}
	isAdmin, err := s.admins.IsAdmin(ctx, adminID)
	if err != nil {
		return InterviewResponse{}, err
	}
	if !isAdmin {
		return InterviewResponse{}, interviewerrors.ErrNotAdmin
	}
	if _, err := uuid.Parse(id); err != nil {
		return InterviewResponse{}, interviewerrors.ErrInvalidInterviewID
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return InterviewResponse{}, interviewerrors.ErrInterviewNotFound
		}
		return InterviewResponse{}, err
	}

	wasApproved := existing.Status == StatusApproved
	slug := ""
	if existing.Company != nil {
		slug = existing.Company.Slug
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("moderate review begin tx failed", zap.Error(err))
		return InterviewResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdateStatus(ctx, id, targetStatus); err != nil {
		s.logger.Error("moderate review persist failed",
			zap.String("interview_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return InterviewResponse{}, err
	}

	eventType := events.InterviewApproved
	if targetStatus == StatusRejected {
		eventType = events.InterviewRejected
	}
	if err := s.queueLifecycleEvent(ctx, tx, rid, eventType, existing, slug); err != nil {
		return InterviewResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("moderate review commit failed", zap.String("interview_id", id), zap.Error(err))
		return InterviewResponse{}, err
	}

	switch targetStatus {
	case StatusApproved:
		keys := []string{pagecache.KeyHome, pagecache.KeyRecent, pagecache.KeyAdminPending}
		if slug != "" {
			keys = append(keys, pagecache.CompanyKey(slug))
		}
		s.pages.Invalidate(ctx, keys...)
		s.scores.InvalidateCompany(ctx, existing.CompanyID.String())
	case StatusRejected:
		s.pages.Invalidate(ctx, pagecache.KeyAdminPending)
		if wasApproved {
			s.scores.InvalidateCompany(ctx, existing.CompanyID.String())
		}
	}

	existing.Status = targetStatus

	s.logger.Info("moderate review success",
		zap.String("request_id", rid),
		zap.String("interview_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*existing), nil
}

// Flag appends a moderation report against a review without touching
// its status; accumulated flags only surface it in the admin queue.
func (s *service) Flag(ctx context.Context, id, reason string) error {
	rid := contextutil.GetRequestID(ctx)

	if _, err := uuid.Parse(id); err != nil {
		return interviewerrors.ErrInvalidInterviewID
	}
	if !isOneOf(reason, FlagReasons) {
		return interviewerrors.ErrInvalidFlagReason
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return interviewerrors.ErrInterviewNotFound
		}
		return err
	}

	slug := ""
	if existing.Company != nil {
		slug = existing.Company.Slug
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("flag review begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	flag := &ModerationFlag{
		ID:          uuid.New(),
		InterviewID: existing.ID,
		Reason:      reason,
	}
	if err := qtx.CreateFlag(ctx, flag); err != nil {
		s.logger.Error("flag review persist failed", zap.String("interview_id", id), zap.Error(err))
		return err
	}

	if err := s.queueLifecycleEvent(ctx, tx, rid, events.InterviewFlagged, existing, slug); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("flag review commit failed", zap.String("interview_id", id), zap.Error(err))
		return err
	}

	s.pages.Invalidate(ctx, pagecache.KeyAdminFlagged)

	s.logger.Info("review flagged",
		zap.String("interview_id", id),
		zap.String("reason", reason),
	)
	return nil
}

func (s *service) ListMine(ctx context.Context, actorID string) ([]InterviewResponse, error) {
	if actorID == "" {
		return nil, interviewerrors.ErrUnauthenticated
	}

	interviews, err := s.repo.FindByOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(interviews), nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]InterviewResponse, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	interviews, err := s.repo.FindRecentApproved(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(interviews), nil
}

func (s *service) ListApprovedForCompany(ctx context.Context, slug string) ([]InterviewResponse, error) {
	comp, err := s.companies.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	interviews, err := s.repo.FindApprovedByCompany(ctx, comp.ID.String())
	if err != nil {
		return nil, err
	}
	return mapToListResponse(interviews), nil
}

func (s *service) ListPendingQueue(ctx context.Context) ([]InterviewResponse, error) {
	interviews, err := s.repo.FindPending(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(interviews), nil
}

func (s *service) ListFlaggedQueue(ctx context.Context) ([]InterviewResponse, error) {
	rows, err := s.repo.FindFlaggedApproved(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]InterviewResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row.Interview)
		resp[i].FlagCount = row.FlagCount
	}
	return resp, nil
}

func (s *service) queueLifecycleEvent(
	ctx context.Context,
	tx *sql.Tx,
	requestID, eventType string,
	i *Interview,
	slug string,
) error {
	if s.outbox == nil {
		return nil
	}

	event := events.InterviewLifecycleEvent{
		EventType:   eventType,
		RequestID:   requestID,
		InterviewID: i.ID.String(),
		CompanyID:   i.CompanyID.String(),
		CompanySlug: slug,
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal lifecycle event failed", zap.Error(err))
		return err
	}

	outboxRepo := s.outbox.WithTx(tx)
	if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: "interview",
		AggregateID:   i.ID.String(),
		EventType:     eventType,
		Topic:         events.InterviewLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("queue lifecycle event failed",
			zap.String("interview_id", i.ID.String()),
			zap.Error(err),
		)
		return err
	}

	return nil
}

func marshalFollowUps(answers map[string]string) (datatypes.JSON, error) {
	if len(answers) == 0 {
		return nil, nil
	}
	raw, err := json.Marshal(answers)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func mapToResponse(i Interview) InterviewResponse {
	resp := InterviewResponse{
		ID:                    i.ID.String(),
		CompanyID:             i.CompanyID.String(),
		RoleTitle:             i.RoleTitle,
		Seniority:             i.Seniority,
		InterviewType:         i.InterviewType,
		Outcome:               i.Outcome,
		StagesCount:           i.StagesCount,
		TotalDurationDays:     i.TotalDurationDays,
		RatingProfessionalism: i.RatingProfessionalism,
		RatingCommunication:   i.RatingCommunication,
		RatingClarity:         i.RatingClarity,
		RatingFairness:        i.RatingFairness,
		ReceivedFeedback:      i.ReceivedFeedback,
		UnpaidTask:            i.UnpaidTask,
		Ghosted:               i.Ghosted,
		InterviewerLate:       i.InterviewerLate,
		ExceededTimeline:      i.ExceededTimeline,
		OverallComments:       i.OverallComments,
		CandidateTip:          i.CandidateTip,
		SubmittedBy:           i.SubmittedBy.String(),
		Status:                i.Status,
		CreatedAt:             i.CreatedAt,
	}

	if len(i.FollowUpAnswers) > 0 {
		var answers map[string]string
		if json.Unmarshal(i.FollowUpAnswers, &answers) == nil {
			resp.FollowUpAnswers = answers
		}
	}

	if i.Company != nil {
		resp.CompanyName = i.Company.Name
		resp.CompanySlug = i.Company.Slug
	}

	return resp
}

func mapToListResponse(interviews []Interview) []InterviewResponse {
	resp := make([]InterviewResponse, len(interviews))
	for i, item := range interviews {
		resp[i] = mapToResponse(item)
	}
	return resp
}
