package appointment

import (
	"errors"

	"gorm.io/gorm"
)

type AppointmentService struct {
	DB *gorm.DB
	// UniqueIdentity rejects a new appointment whose identity number is
	// already booked. When false, repeat patients share an identity number
	// and lookups resolve to the earliest record.
	UniqueIdentity bool
}

func NewAppointmentService(db *gorm.DB, uniqueIdentity bool) *AppointmentService {
	return &AppointmentService{DB: db, UniqueIdentity: uniqueIdentity}
}

func validate(a *Appointment) error {
	if a.TimeSlot == "" {
		return ErrNoTimeSlot
	}
	if !IsValidTimeSlot(a.TimeSlot) {
		return ErrInvalidTimeSlot
	}
	date, err := NormalizeDate(a.Date)
	if err != nil {
		return err
	}
	a.Date = date
	return nil
}

func (s *AppointmentService) Create(a Appointment) (*Appointment, error) {
	if err := validate(&a); err != nil {
		return nil, err
	}
	a.ID = 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if s.UniqueIdentity {
			var n int64
			if err := tx.Model(&Appointment{}).
				Where("identity_number = ?", a.IdentityNumber).
				Count(&n).Error; err != nil {
				return storageErr("save", err)
			}
			if n > 0 {
				return ErrDuplicateIdentity
			}
		}
		if err := tx.Create(&a).Error; err != nil {
			return storageErr("save", err)
		}
		return nil
	})
	if err != nil {
		return nil, txErr("save", err)
	}

	return &a, nil
}

// txErr wraps begin/commit failures; errors raised inside the transaction
// body are already classified.
func txErr(op string, err error) error {
	var se *StorageError
	if errors.As(err, &se) || errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateIdentity) {
		return err
	}
	return storageErr(op, err)
}

// firstByIdentity loads the earliest stored appointment for identityNumber.
func firstByIdentity(db *gorm.DB, op, identityNumber string) (*Appointment, error) {
	var a Appointment
	err := db.
		Where("identity_number = ?", identityNumber).
		Order("id ASC").
		First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, storageErr(op, err)
	}
	return &a, nil
}

func (s *AppointmentService) FindByIdentity(identityNumber string) (*Appointment, error) {
	return firstByIdentity(s.DB, "view", identityNumber)
}

// UpdateByIdentity overwrites every mutable field of the first match. The
// identity number itself is the lookup key and is never changed.
func (s *AppointmentService) UpdateByIdentity(identityNumber string, a Appointment) (*Appointment, error) {
	if err := validate(&a); err != nil {
		return nil, err
	}

	var updated *Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := firstByIdentity(tx, "edit", identityNumber)
		if err != nil {
			return err
		}

		existing.Name = a.Name
		existing.Address = a.Address
		existing.Phone = a.Phone
		existing.Date = a.Date
		existing.TimeSlot = a.TimeSlot

		if err := tx.Model(existing).
			Select("name", "address", "phone", "date", "time_slot", "updated_at").
			Updates(existing).Error; err != nil {
			return storageErr("edit", err)
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, txErr("edit", err)
	}

	return updated, nil
}

// DeleteByIdentity removes exactly one record, the first match.
func (s *AppointmentService) DeleteByIdentity(identityNumber string) (*Appointment, error) {
	var deleted *Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		existing, err := firstByIdentity(tx, "delete", identityNumber)
		if err != nil {
			return err
		}
		if err := tx.Delete(&Appointment{}, existing.ID).Error; err != nil {
			return storageErr("delete", err)
		}
		deleted = existing
		return nil
	})
	if err != nil {
		return nil, txErr("delete", err)
	}

	return deleted, nil
}

func (s *AppointmentService) ListByDate(date string) ([]Appointment, error) {
	day, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}

	appointments := []Appointment{}
	result := s.DB.
		Where("date = ?", day).
		Order("time_slot ASC").
		Order("id ASC").
		Find(&appointments)
	if result.Error != nil {
		return nil, storageErr("list", result.Error)
	}
	return appointments, nil
}

func (s *AppointmentService) Count() (int64, error) {
	var n int64
	if err := s.DB.Model(&Appointment{}).Count(&n).Error; err != nil {
		return 0, storageErr("count", err)
	}
	return n, nil
}
