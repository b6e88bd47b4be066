package models

import "time"

type Task struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	OwnerID uint   `json:"-" gorm:"index;not null;default:0"` // references users.id
	Text    string `json:"text" gorm:"not null"`
	// Reserved: no endpoint flips this yet, but clients already render it.
	Completed     bool      `json:"completed" gorm:"default:false"`
	PomodoroCount int       `json:"pomodoroCount" gorm:"default:0"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
