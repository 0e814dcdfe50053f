package auth

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrStaffExists = errors.New("An account with this email already exists. Please log in or use different details.")

type AuthService struct {
	DB *gorm.DB
}

func (s *AuthService) CreateStaff(staff Staff) (*Staff, error) {
	if staff.Role == "" {
		staff.Role = RoleReception
	}
	staff.Email = strings.ToLower(strings.TrimSpace(staff.Email))

	if err := s.DB.Create(&staff).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrStaffExists
		}
		return nil, err
	}

	return &staff, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

func (s *AuthService) GetStaff(email string) (*Staff, error) {
	var staff Staff
	result := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&staff)
	if result.Error != nil {
		return nil, result.Error
	}
	return &staff, nil
}

func (s *AuthService) GetStaffByID(id uint) (*Staff, error) {
	var staff Staff
	result := s.DB.Where("id = ?", id).First(&staff)
	if result.Error != nil {
		return nil, result.Error
	}
	return &staff, nil
}
