package interview_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hiringlens/internal/interview"
	interviewerrors "hiringlens/internal/interview/errors"
	"hiringlens/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeInterviewService struct {
	submitFn func(ctx context.Context, actorID string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error)
	editFn   func(ctx context.Context, actorID, id string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error)
	deleteFn func(ctx context.Context, actorID, id string) error
	flagFn   func(ctx context.Context, id, reason string) error
}

func (f *fakeInterviewService) Submit(ctx context.Context, actorID string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error) {
	return f.submitFn(ctx, actorID, req)
}
func (f *fakeInterviewService) Edit(ctx context.Context, actorID, id string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error) {
	return f.editFn(ctx, actorID, id, req)
}
func (f *fakeInterviewService) Delete(ctx context.Context, actorID, id string) error {
	return f.deleteFn(ctx, actorID, id)
}
func (f *fakeInterviewService) Approve(ctx context.Context, adminID, id string) (interview.InterviewResponse, error) {
	return interview.InterviewResponse{}, nil
}
func (f *fakeInterviewService) Reject(ctx context.Context, adminID, id string) (interview.InterviewResponse, error) {
	return interview.InterviewResponse{}, nil
}
func (f *fakeInterviewService) Flag(ctx context.Context, id, reason string) error {
	return f.flagFn(ctx, id, reason)
}
func (f *fakeInterviewService) ListMine(ctx context.Context, actorID string) ([]interview.InterviewResponse, error) {
	return nil, nil
}
func (f *fakeInterviewService) ListRecent(ctx context.Context, limit int) ([]interview.InterviewResponse, error) {
	return nil, nil
}
func (f *fakeInterviewService) ListApprovedForCompany(ctx context.Context, slug string) ([]interview.InterviewResponse, error) {
	return nil, nil
}
func (f *fakeInterviewService) ListPendingQueue(ctx context.Context) ([]interview.InterviewResponse, error) {
	return nil, nil
}
func (f *fakeInterviewService) ListFlaggedQueue(ctx context.Context) ([]interview.InterviewResponse, error) {
	return nil, nil
}

func rateLimitedErr() error {
	return apperror.New(apperror.CodeRateLimited, "Submission limit reached", http.StatusTooManyRequests)
}

const submitBody = `{
	"company_name": "Acme Corp",
	"role_title": "Backend Engineer",
	"seniority": "mid",
	"interview_type": "technical",
	"outcome": "rejected",
	"rating_professionalism": 4,
	"rating_communication": 4,
	"rating_clarity": 3,
	"rating_fairness": 4,
	"received_feedback": true
}`

func TestInterviewHandler_Submit(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeInterviewService{
			submitFn: func(ctx context.Context, aid string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error) {
				assert.Equal(t, actorID, aid)
				assert.Equal(t, "Acme Corp", req.CompanyName)
				return interview.InterviewResponse{
					ID:     uuid.New().String(),
					Status: interview.StatusPending,
				}, nil
			},
		}

		h := interview.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(submitBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got interview.InterviewResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, interview.StatusPending, got.Status)
	})

	t.Run("negative missing ratings", func(t *testing.T) {
		h := interview.NewHandler(&fakeInterviewService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(`{"company_name":"Acme"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative rating out of range", func(t *testing.T) {
		h := interview.NewHandler(&fakeInterviewService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := strings.Replace(submitBody, `"rating_fairness": 4`, `"rating_fairness": 6`, 1)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("negative rate limit surfaces 429", func(t *testing.T) {
		svc := &fakeInterviewService{
			submitFn: func(ctx context.Context, aid string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error) {
				return interview.InterviewResponse{}, rateLimitedErr()
			},
		}
		h := interview.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(submitBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.Submit(c)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "RATE_LIMITED", env.Error.Code)
	})
}

func TestInterviewHandler_SubmitIdempotency(t *testing.T) {
	cacheKey := "idemp:/api/v1/reviews:user-1:key-1"
	lockKey := cacheKey + ":lock"

	t.Run("success caches the response and releases the lock", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := &fakeInterviewService{
			submitFn: func(ctx context.Context, aid string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error) {
				return interview.InterviewResponse{ID: uuid.New().String(), Status: interview.StatusPending}, nil
			},
		}
		h := interview.NewHandlerWithRedis(svc, rdb)

		mock.Regexp().ExpectSet(cacheKey, `.*`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(lockKey).SetVal(1)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(submitBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure releases the lock without caching", func(t *testing.T) {
		rdb, mock := redismock.NewClientMock()
		svc := &fakeInterviewService{
			submitFn: func(ctx context.Context, aid string, req interview.SubmitInterviewRequest) (interview.InterviewResponse, error) {
				return interview.InterviewResponse{}, rateLimitedErr()
			},
		}
		h := interview.NewHandlerWithRedis(svc, rdb)

		mock.ExpectDel(lockKey).SetVal(1)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews", strings.NewReader(submitBody))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())
		c.Set("idempotency_cache_key", cacheKey)
		c.Set("idempotency_lock_key", lockKey)

		h.Submit(c)

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestInterviewHandler_Delete(t *testing.T) {
	t.Run("negative non-pending review", func(t *testing.T) {
		svc := &fakeInterviewService{
			deleteFn: func(ctx context.Context, actorID, id string) error {
				return interviewerrors.ErrDeleteNonPending
			},
		}
		h := interview.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/reviews/abc", nil)
		c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
		c.Set("user_id", uuid.New().String())

		h.Delete(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INVALID_STATE", env.Error.Code)
	})
}

func TestInterviewHandler_Flag(t *testing.T) {
	t.Run("success without auth", func(t *testing.T) {
		reviewID := uuid.New().String()
		svc := &fakeInterviewService{
			flagFn: func(ctx context.Context, id, reason string) error {
				assert.Equal(t, reviewID, id)
				assert.Equal(t, "spam", reason)
				return nil
			},
		}
		h := interview.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews/x/flag", strings.NewReader(`{"reason":"spam"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: reviewID}}

		h.Flag(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative missing reason", func(t *testing.T) {
		h := interview.NewHandler(&fakeInterviewService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/reviews/x/flag", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Flag(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
