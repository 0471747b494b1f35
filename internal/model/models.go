package model

import (
	"time"

	"gorm.io/datatypes"
)

type Admin struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Username     string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string
	Status       string `gorm:"default:active;not null"` // active/disabled
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// GenerationRun is one enumeration of a card into playable hands.
type GenerationRun struct {
	ID            string `gorm:"primaryKey;size:36"`
	CardVersion   string `gorm:"index;not null"`
	Year          int
	TotalPatterns int
	TotalHands    int
	Successful    int
	Failed        int
	SkippedCount  int
	ReportJSON    datatypes.JSON
	CreatedAt     time.Time
}

type PlayableHand struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	RunID          string `gorm:"index;size:36;not null"`
	HandID         string `gorm:"index;not null"`
	Section        string `gorm:"index"`
	Line           int
	PatternID      int
	PatternKey     string `gorm:"index"`
	DisplayPattern string
	Description    string
	Points         int
	Difficulty     string
	Concealed      bool
	TilesJSON      datatypes.JSON // ["1D","1D",...]
	CountsJSON     datatypes.JSON
	JokerJSON      datatypes.JSON
	SuitsJSON      datatypes.JSON
	ValuesJSON     datatypes.JSON
	TotalTiles     int
	Success        bool `gorm:"index"`
	Note           string
	CreatedAt      time.Time
}

type SkippedTemplate struct {
	ID             int64  `gorm:"primaryKey;autoIncrement"`
	RunID          string `gorm:"index;size:36;not null"`
	PatternKey     string
	DisplayPattern string
	SuitCombos     int
	ValueCombos    int
	Total          int
	CreatedAt      time.Time
}
