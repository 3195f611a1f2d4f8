package vote

import (
	"time"

	"github.com/google/uuid"
)

// Vote marks a review as helpful. One row per (interview, user) pair;
// toggling off deletes the row.
type Vote struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	InterviewID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_interview_votes_pair"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_interview_votes_pair"`
	CreatedAt   time.Time
}

func (Vote) TableName() string {
	return "interview_votes"
}
