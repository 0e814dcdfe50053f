package appointment

import (
	"clinic-desk-api/internal/logs"
	"context"
)

type AppointmentServiceAPI interface {
	Create(a Appointment) (*Appointment, error)
	FindByIdentity(identityNumber string) (*Appointment, error)
	UpdateByIdentity(identityNumber string, a Appointment) (*Appointment, error)
	DeleteByIdentity(identityNumber string) (*Appointment, error)
	ListByDate(date string) ([]Appointment, error)
	ExportDay(date, format string) (contentType, filename string, out []byte, err error)
}

type ArchiveServiceAPI interface {
	Enabled() bool
	ArchiveDay(ctx context.Context, date string) (string, error)
	ListArchives(ctx context.Context) ([]string, error)
}

type LogServicePort interface {
	Log(entry logs.SystemLog, payload any) error
}

var _ AppointmentServiceAPI = (*AppointmentService)(nil)
var _ ArchiveServiceAPI = (*ArchiveService)(nil)
var _ LogServicePort = (*logs.LogService)(nil)
