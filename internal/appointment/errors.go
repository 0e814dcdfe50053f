package appointment

import (
	"errors"
	"fmt"
)

var (
	ErrNoTimeSlot        = errors.New("please select a time slot")
	ErrMultipleTimeSlots = errors.New("select only one time slot")
	ErrInvalidTimeSlot   = errors.New("invalid time slot")
	ErrInvalidDate       = errors.New("invalid date (use YYYY-MM-DD)")

	ErrNotFound          = errors.New("no appointment found for this identity number")
	ErrDuplicateIdentity = errors.New("an appointment with this identity number already exists")
)

var validationErrors = []error{ErrNoTimeSlot, ErrMultipleTimeSlots, ErrInvalidTimeSlot, ErrInvalidDate}

func IsValidation(err error) bool {
	for _, v := range validationErrors {
		if errors.Is(err, v) {
			return true
		}
	}
	return false
}

// StorageError reports that the store rejected or could not run an operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s appointment: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
