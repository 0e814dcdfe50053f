package logs

import (
	"time"

	"gorm.io/datatypes"
)

const (
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

type SystemLog struct {
	ID             uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Level          string         `gorm:"size:20;not null" json:"level"`
	Service        string         `gorm:"size:100;not null" json:"service"`
	StaffID        *uint          `gorm:"index" json:"staff_id,omitempty"`
	Action         string         `gorm:"size:255;not null" json:"action"`
	Message        string         `gorm:"type:text;not null" json:"message"`
	IdentityNumber *string        `gorm:"size:64;index" json:"identity_number,omitempty"`
	Metadata       datatypes.JSON `json:"metadata,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (SystemLog) TableName() string {
	return "logs"
}

type LogFilterInput struct {
	StaffID        *uint   `json:"staff_id"`
	Level          *string `json:"level"`
	Service        *string `json:"service"`
	Action         *string `json:"action"`
	IdentityNumber *string `json:"identity_number"`

	StartDate *string `json:"start_date"` // "YYYY-MM-DD" or RFC3339
	EndDate   *string `json:"end_date"`

	Search   *string `json:"search"`
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
}

type AggItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type PersonAggItem struct {
	StaffID   *uint  `json:"staff_id,omitempty"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Label     string `json:"label"`
	Count     int64  `json:"count"`
}

type LogAggregates struct {
	ByAction []AggItem       `json:"by_action"`
	ByPerson []PersonAggItem `json:"by_person"`
}

type LogRow struct {
	SystemLog
	Firstname string `json:"firstname" gorm:"column:firstname"`
	Lastname  string `json:"lastname" gorm:"column:lastname"`
}
