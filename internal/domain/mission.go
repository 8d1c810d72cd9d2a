package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MissionStatus string

const (
	MissionPending    MissionStatus = "pending"
	MissionInProgress MissionStatus = "in_progress"
	MissionDone       MissionStatus = "done"
	MissionPaid       MissionStatus = "paid"
)

func (s MissionStatus) Valid() bool {
	switch s {
	case MissionPending, MissionInProgress, MissionDone, MissionPaid:
		return true
	}
	return false
}

type Mission struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string        `gorm:"type:uuid;index;not null" json:"user_id"`
	ClientID  string        `gorm:"type:uuid;index;not null" json:"client_id"`
	Title     string        `gorm:"size:255;not null" json:"title"`
	Amount    float64       `gorm:"not null" json:"amount"`
	Status    MissionStatus `gorm:"size:32;not null" json:"status"`
	Date      time.Time     `gorm:"not null" json:"date"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (m *Mission) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
