package score

import (
	"math"
	"time"

	"hiringlens/internal/interview"
)

// Penalty weights, in score points per 100% incidence.
const (
	penaltyGhosted          = 15.0
	penaltyUnpaidTask       = 10.0
	penaltyExceededTimeline = 10.0
	penaltyNoFeedback       = 5.0
)

// CompanyScore is the Reality Score aggregate for one company,
// computed over its approved reviews only. Score is nil when the
// company has no approved reviews yet.
type CompanyScore struct {
	CompanyID   string   `json:"company_id"`
	ReviewCount int      `json:"review_count"`
	Score       *float64 `json:"score"`

	AvgProfessionalism *float64 `json:"avg_professionalism"`
	AvgCommunication   *float64 `json:"avg_communication"`
	AvgClarity         *float64 `json:"avg_clarity"`
	AvgFairness        *float64 `json:"avg_fairness"`

	// Averages over reviews that reported a value; nil when none did.
	AvgStages       *float64 `json:"avg_stages"`
	AvgDurationDays *float64 `json:"avg_duration_days"`

	PctGhosted          *float64 `json:"pct_ghosted"`
	PctUnpaidTask       *float64 `json:"pct_unpaid_task"`
	PctExceededTimeline *float64 `json:"pct_exceeded_timeline"`
	PctNoFeedback       *float64 `json:"pct_no_feedback"`

	ComputedAt time.Time `json:"computed_at"`
}

type LeaderboardEntry struct {
	CompanyID   string   `json:"company_id"`
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	ReviewCount int      `json:"review_count"`
	Score       *float64 `json:"score"`
}

// Compute derives the Reality Score from a set of approved reviews.
// The rating average maps linearly onto 0..100 (all 1s -> 0, all
// 5s -> 100), then incidence penalties are subtracted and the result
// clamped back into 0..100. Deterministic: same input, same output.
func Compute(companyID string, reviews []interview.Interview) CompanyScore {
	cs := CompanyScore{
		CompanyID:   companyID,
		ReviewCount: len(reviews),
		ComputedAt:  time.Now().UTC(),
	}
	if len(reviews) == 0 {
		return cs
	}

	n := float64(len(reviews))
	var sumProf, sumComm, sumClar, sumFair float64
	var ghosted, unpaid, exceeded, noFeedback float64
	var sumStages, sumDuration float64
	var stagesN, durationN float64

	for _, r := range reviews {
		sumProf += float64(r.RatingProfessionalism)
		sumComm += float64(r.RatingCommunication)
		sumClar += float64(r.RatingClarity)
		sumFair += float64(r.RatingFairness)

		if r.StagesCount != nil {
			sumStages += float64(*r.StagesCount)
			stagesN++
		}
		if r.TotalDurationDays != nil {
			sumDuration += float64(*r.TotalDurationDays)
			durationN++
		}

		if r.Ghosted {
			ghosted++
		}
		if r.UnpaidTask {
			unpaid++
		}
		if r.ExceededTimeline {
			exceeded++
		}
		if !r.ReceivedFeedback {
			noFeedback++
		}
	}

	avgProf := sumProf / n
	avgComm := sumComm / n
	avgClar := sumClar / n
	avgFair := sumFair / n

	cs.AvgProfessionalism = round1p(avgProf)
	cs.AvgCommunication = round1p(avgComm)
	cs.AvgClarity = round1p(avgClar)
	cs.AvgFairness = round1p(avgFair)

	if stagesN > 0 {
		cs.AvgStages = round1p(sumStages / stagesN)
	}
	if durationN > 0 {
		cs.AvgDurationDays = round1p(sumDuration / durationN)
	}

	pctGhosted := ghosted / n
	pctUnpaid := unpaid / n
	pctExceeded := exceeded / n
	pctNoFeedback := noFeedback / n
	cs.PctGhosted = &pctGhosted
	cs.PctUnpaidTask = &pctUnpaid
	cs.PctExceededTimeline = &pctExceeded
	cs.PctNoFeedback = &pctNoFeedback

	overallAvg := (avgProf + avgComm + avgClar + avgFair) / 4
	base := (overallAvg - 1) / 4 * 100

	score := base -
		penaltyGhosted*pctGhosted -
		penaltyUnpaidTask*pctUnpaid -
		penaltyExceededTimeline*pctExceeded -
		penaltyNoFeedback*pctNoFeedback

	score = math.Min(100, math.Max(0, score))
	score = round1(score)
	cs.Score = &score

	return cs
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round1p(v float64) *float64 {
	r := round1(v)
	return &r
}
