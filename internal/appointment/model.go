package appointment

import (
	"time"
)

type Appointment struct {
	ID             int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:text;column:name" json:"name"`
	IdentityNumber string    `gorm:"type:text;index;column:identity_number" json:"identity_number"`
	Address        string    `gorm:"type:text;column:address" json:"address"`
	Phone          string    `gorm:"type:text;column:phone" json:"phone"`
	Date           string    `gorm:"size:10;index;column:date" json:"date"`
	TimeSlot       string    `gorm:"size:5;column:time_slot" json:"time_slot"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// AppointmentInput is the form payload. TimeSlots holds every checked slot
// button; TimeSlot is accepted for clients that send a single value.
type AppointmentInput struct {
	Name           string   `json:"name"`
	IdentityNumber string   `json:"identity_number"`
	Address        string   `json:"address"`
	Phone          string   `json:"phone"`
	Date           string   `json:"date" binding:"required"`
	TimeSlot       string   `json:"time_slot"`
	TimeSlots      []string `json:"time_slots"`
}

func (in AppointmentInput) checkedSlots() []string {
	if len(in.TimeSlots) > 0 {
		return in.TimeSlots
	}
	if in.TimeSlot != "" {
		return []string{in.TimeSlot}
	}
	return nil
}
