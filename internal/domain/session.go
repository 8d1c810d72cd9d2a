package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session binds one outstanding refresh token to a user. The row stores
// the peppered hash of the token, never the raw value. Deleting the row
// is what makes a refresh token single-use.
type Session struct {
	ID               string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           string    `gorm:"type:uuid;index;not null" json:"user_id"`
	RefreshTokenHash string    `gorm:"size:128;uniqueIndex;not null" json:"-"`
	UserAgent        string    `gorm:"size:512" json:"user_agent"`
	IP               string    `gorm:"size:64" json:"ip"`
	ExpiresAt        time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt        time.Time `json:"created_at"`
}

func (s *Session) BeforeCreate(_ *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (s *Session) Expired(now time.Time) bool {
	return s.ExpiresAt.Before(now)
}
