package company

import (
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name string    `gorm:"type:varchar(200);not null"`
	Slug string    `gorm:"type:varchar(200);not null;uniqueIndex:uq_company_slug"`

	Industry   string `gorm:"type:varchar(100)"`
	Location   string `gorm:"type:varchar(200)"`
	LogoURL    string `gorm:"type:text"`
	WebsiteURL string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
