package appointment

import (
	"iter"

	"gorm.io/gorm"
)

// DaySchedule is the appointments of one date, read lazily. Every call to All
// runs a fresh query, so a schedule can be ranged over any number of times.
type DaySchedule struct {
	db   *gorm.DB
	date string
}

func (s *AppointmentService) ScheduleForDate(date string) *DaySchedule {
	return &DaySchedule{db: s.DB, date: date}
}

func (d *DaySchedule) Date() string { return d.date }

// All streams the day's appointments ordered by time slot. The underlying
// rows stay open until the loop ends, so the body must not call back into
// the store when it is pinned to a single connection.
func (d *DaySchedule) All() iter.Seq2[Appointment, error] {
	return func(yield func(Appointment, error) bool) {
		day, err := NormalizeDate(d.date)
		if err != nil {
			yield(Appointment{}, err)
			return
		}

		rows, err := d.db.Model(&Appointment{}).
			Where("date = ?", day).
			Order("time_slot ASC").
			Order("id ASC").
			Rows()
		if err != nil {
			yield(Appointment{}, storageErr("list", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var a Appointment
			if err := d.db.ScanRows(rows, &a); err != nil {
				yield(Appointment{}, storageErr("list", err))
				return
			}
			if !yield(a, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(Appointment{}, storageErr("list", err))
		}
	}
}
