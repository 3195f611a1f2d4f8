package interview

import (
	"time"

	"hiringlens/internal/company"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Review lifecycle. Pending rows are invisible to the public surface;
// only an admin action moves a row out of pending, and an owner edit
// always moves it back in.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

var Seniorities = []string{"intern", "junior", "mid", "senior", "staff", "principal", "executive"}

var InterviewTypes = []string{"phone_screen", "technical", "behavioral", "take_home", "onsite", "panel", "mixed"}

var Outcomes = []string{"offer", "rejected", "ghosted", "withdrew", "in_progress"}

// FlagReasons is the fixed set of reasons a reader may report an
// approved review with.
var FlagReasons = []string{"spam", "fake", "offensive", "confidential_info", "duplicate", "other"}

type Interview struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index:idx_interviews_company_status"`

	RoleTitle     string `gorm:"type:varchar(200);not null"`
	Seniority     string `gorm:"type:varchar(30);not null"`
	InterviewType string `gorm:"type:varchar(30);not null"`
	Outcome       string `gorm:"type:varchar(30);not null"`

	StagesCount       *int `gorm:"type:int"`
	TotalDurationDays *int `gorm:"type:int"`

	// All four ratings are 1-5 and must be present before a row exists.
	RatingProfessionalism int `gorm:"type:int;not null"`
	RatingCommunication   int `gorm:"type:int;not null"`
	RatingClarity         int `gorm:"type:int;not null"`
	RatingFairness        int `gorm:"type:int;not null"`

	ReceivedFeedback bool `gorm:"not null;default:false"`
	UnpaidTask       bool `gorm:"not null;default:false"`
	Ghosted          bool `gorm:"not null;default:false"`
	InterviewerLate  bool `gorm:"not null;default:false"`
	ExceededTimeline bool `gorm:"not null;default:false"`

	OverallComments string `gorm:"type:text"`
	CandidateTip    string `gorm:"type:text"`

	// Structured follow-up answers live in their own typed column, never
	// embedded in the free-text comments.
	FollowUpAnswers datatypes.JSON `gorm:"type:jsonb"`

	SubmittedBy uuid.UUID `gorm:"type:uuid;not null;index:idx_interviews_owner"`
	Status      string    `gorm:"type:varchar(20);not null;default:'pending';index:idx_interviews_company_status"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Company *company.Company `gorm:"foreignKey:CompanyID"`
}

type ModerationFlag struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;index:idx_moderation_flags_interview"`
	Reason      string    `gorm:"type:varchar(40);not null"`
	CreatedAt   time.Time
}

func (ModerationFlag) TableName() string {
	return "moderation_flags"
}

func isOneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}
