package score_test

import (
	"testing"

	"hiringlens/internal/interview"
	"hiringlens/internal/score"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func review(rating int, mutate ...func(*interview.Interview)) interview.Interview {
	r := interview.Interview{
		ID:                    uuid.New(),
		RatingProfessionalism: rating,
		RatingCommunication:   rating,
		RatingClarity:         rating,
		RatingFairness:        rating,
		ReceivedFeedback:      true,
		Status:                interview.StatusApproved,
	}
	for _, m := range mutate {
		m(&r)
	}
	return r
}

func TestCompute_NoApprovedReviews(t *testing.T) {
	cs := score.Compute(uuid.New().String(), nil)

	assert.Nil(t, cs.Score)
	assert.Equal(t, 0, cs.ReviewCount)
	assert.Nil(t, cs.AvgProfessionalism)
	assert.Nil(t, cs.AvgStages)
	assert.Nil(t, cs.AvgDurationDays)
	assert.Nil(t, cs.PctGhosted)
	assert.Nil(t, cs.PctUnpaidTask)
	assert.Nil(t, cs.PctExceededTimeline)
	assert.Nil(t, cs.PctNoFeedback)
}

func TestCompute_AllFoursIsSeventyFive(t *testing.T) {
	cs := score.Compute(uuid.New().String(), []interview.Interview{review(4)})

	assert.NotNil(t, cs.Score)
	assert.Equal(t, 75.0, *cs.Score)
	assert.Equal(t, 4.0, *cs.AvgProfessionalism)
	assert.Equal(t, 1, cs.ReviewCount)
}

func TestCompute_GhostingPenalty(t *testing.T) {
	// Two all-4 reviews, one ghosted: 75 - 15*0.5 = 67.5.
	reviews := []interview.Interview{
		review(4),
		review(4, func(r *interview.Interview) { r.Ghosted = true }),
	}

	cs := score.Compute(uuid.New().String(), reviews)

	assert.NotNil(t, cs.Score)
	assert.Equal(t, 67.5, *cs.Score)
	assert.Equal(t, 0.5, *cs.PctGhosted)
}

func TestCompute_AllPenaltiesStack(t *testing.T) {
	// Perfect ratings but every red flag set: 100 - 15 - 10 - 10 - 5 = 60.
	reviews := []interview.Interview{
		review(5, func(r *interview.Interview) {
			r.Ghosted = true
			r.UnpaidTask = true
			r.ExceededTimeline = true
			r.ReceivedFeedback = false
		}),
	}

	cs := score.Compute(uuid.New().String(), reviews)

	assert.Equal(t, 60.0, *cs.Score)
}

func TestCompute_ClampsAtZero(t *testing.T) {
	reviews := []interview.Interview{
		review(1, func(r *interview.Interview) {
			r.Ghosted = true
			r.UnpaidTask = true
			r.ExceededTimeline = true
			r.ReceivedFeedback = false
		}),
	}

	cs := score.Compute(uuid.New().String(), reviews)

	assert.Equal(t, 0.0, *cs.Score)
}

func TestCompute_PerfectScoreIsHundred(t *testing.T) {
	cs := score.Compute(uuid.New().String(), []interview.Interview{review(5), review(5)})

	assert.Equal(t, 100.0, *cs.Score)
	assert.Equal(t, 0.0, *cs.PctGhosted)
}

func TestCompute_StageAndDurationAverages(t *testing.T) {
	intp := func(v int) *int { return &v }

	t.Run("averages over reported values", func(t *testing.T) {
		reviews := []interview.Interview{
			review(4, func(r *interview.Interview) {
				r.StagesCount = intp(3)
				r.TotalDurationDays = intp(10)
			}),
			review(4, func(r *interview.Interview) {
				r.StagesCount = intp(5)
				r.TotalDurationDays = intp(20)
			}),
		}

		cs := score.Compute(uuid.New().String(), reviews)

		assert.NotNil(t, cs.AvgStages)
		assert.Equal(t, 4.0, *cs.AvgStages)
		assert.NotNil(t, cs.AvgDurationDays)
		assert.Equal(t, 15.0, *cs.AvgDurationDays)
	})

	t.Run("unreported values stay out of the mean", func(t *testing.T) {
		reviews := []interview.Interview{
			review(4, func(r *interview.Interview) { r.StagesCount = intp(6) }),
			review(4),
		}

		cs := score.Compute(uuid.New().String(), reviews)

		assert.Equal(t, 6.0, *cs.AvgStages)
		assert.Nil(t, cs.AvgDurationDays)
	})

	t.Run("nil when nobody reported", func(t *testing.T) {
		cs := score.Compute(uuid.New().String(), []interview.Interview{review(4)})

		assert.Nil(t, cs.AvgStages)
		assert.Nil(t, cs.AvgDurationDays)
	})
}

func TestCompute_Deterministic(t *testing.T) {
	companyID := uuid.New().String()
	reviews := []interview.Interview{
		review(3),
		review(5, func(r *interview.Interview) { r.UnpaidTask = true }),
		review(2, func(r *interview.Interview) { r.ReceivedFeedback = false }),
	}

	first := score.Compute(companyID, reviews)
	second := score.Compute(companyID, reviews)

	assert.Equal(t, *first.Score, *second.Score)
	assert.Equal(t, *first.PctNoFeedback, *second.PctNoFeedback)
}

func TestCompute_ScoreStaysInRange(t *testing.T) {
	for rating := 1; rating <= 5; rating++ {
		cs := score.Compute(uuid.New().String(), []interview.Interview{
			review(rating, func(r *interview.Interview) { r.Ghosted = true }),
		})
		assert.GreaterOrEqual(t, *cs.Score, 0.0)
		assert.LessOrEqual(t, *cs.Score, 100.0)
	}
}
