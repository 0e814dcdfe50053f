package auth

import "clinic-desk-api/internal/logs"

type AuthServicePort interface {
	CreateStaff(staff Staff) (*Staff, error)
	GetStaff(email string) (*Staff, error)
	GetStaffByID(id uint) (*Staff, error)
}

type LogServicePort interface {
	Log(entry logs.SystemLog, payload any) error
}

var _ AuthServicePort = (*AuthService)(nil)
var _ LogServicePort = (*logs.LogService)(nil)
