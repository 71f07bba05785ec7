package db

import "time"

type userModel struct {
	ID             uint   `gorm:"primaryKey"`
	TelegramUserID int64  `gorm:"uniqueIndex;not null"`
	Username       string `gorm:""`
	Locale         string `gorm:"not null;default:en"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (userModel) TableName() string { return "users" }

type alertModel struct {
	ID        uint   `gorm:"primaryKey"`
	AlertID   string `gorm:"uniqueIndex;not null"`
	OwnerID   int64  `gorm:"index:idx_alerts_owner_status,priority:1;not null"`
	Asset     string `gorm:"not null"`
	Threshold string `gorm:"not null"`
	Direction string `gorm:"not null"`
	Status    string `gorm:"index:idx_alerts_owner_status,priority:2;not null"`
	Locale    string `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (alertModel) TableName() string { return "alerts" }
