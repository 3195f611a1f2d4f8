package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Password string    `gorm:"type:varchar(255);not null"`

	// IsAdmin grants access to the moderation queues. There is no role
	// hierarchy beyond this single flag.
	IsAdmin  bool `gorm:"not null;default:false"`
	IsActive bool `gorm:"default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string {
	return "profiles"
}
