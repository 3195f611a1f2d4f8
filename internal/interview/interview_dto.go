package interview

import "time"

type SubmitInterviewRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	RoleTitle     string `json:"role_title" binding:"required"`
	Seniority     string `json:"seniority" binding:"required"`
	InterviewType string `json:"interview_type" binding:"required"`
	Outcome       string `json:"outcome" binding:"required"`

	StagesCount       *int `json:"stages_count" binding:"omitempty,min=1,max=30"`
	TotalDurationDays *int `json:"total_duration_days" binding:"omitempty,min=0,max=365"`

	RatingProfessionalism int `json:"rating_professionalism" binding:"required,min=1,max=5"`
	RatingCommunication   int `json:"rating_communication" binding:"required,min=1,max=5"`
	RatingClarity         int `json:"rating_clarity" binding:"required,min=1,max=5"`
	RatingFairness        int `json:"rating_fairness" binding:"required,min=1,max=5"`

	ReceivedFeedback bool `json:"received_feedback"`
	UnpaidTask       bool `json:"unpaid_task"`
	Ghosted          bool `json:"ghosted"`
	InterviewerLate  bool `json:"interviewer_late"`
	ExceededTimeline bool `json:"exceeded_timeline"`

	OverallComments string `json:"overall_comments" binding:"max=5000"`
	CandidateTip    string `json:"candidate_tip" binding:"max=2000"`

	FollowUpAnswers map[string]string `json:"follow_up_answers"`
}

type FlagInterviewRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type InterviewResponse struct {
	ID          string `json:"id"`
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
	CompanySlug string `json:"company_slug,omitempty"`

	RoleTitle     string `json:"role_title"`
	Seniority     string `json:"seniority"`
	InterviewType string `json:"interview_type"`
	Outcome       string `json:"outcome"`

	StagesCount       *int `json:"stages_count,omitempty"`
	TotalDurationDays *int `json:"total_duration_days,omitempty"`

	RatingProfessionalism int `json:"rating_professionalism"`
	RatingCommunication   int `json:"rating_communication"`
	RatingClarity         int `json:"rating_clarity"`
	RatingFairness        int `json:"rating_fairness"`

	ReceivedFeedback bool `json:"received_feedback"`
	UnpaidTask       bool `json:"unpaid_task"`
	Ghosted          bool `json:"ghosted"`
	InterviewerLate  bool `json:"interviewer_late"`
	ExceededTimeline bool `json:"exceeded_timeline"`

	OverallComments string `json:"overall_comments,omitempty"`
	CandidateTip    string `json:"candidate_tip,omitempty"`

	FollowUpAnswers map[string]string `json:"follow_up_answers,omitempty"`

	SubmittedBy string    `json:"submitted_by"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`

	// FlagCount is populated only on the admin flagged queue.
	FlagCount int64 `json:"flag_count,omitempty"`
}
