package appointment

import (
	"fmt"
	"strings"

	"github.com/iancoleman/orderedmap"
)

const noReservations = "No reservations for the selected date."

// details is the labelled view of one appointment, keys kept in form order.
func details(a *Appointment) *orderedmap.OrderedMap {
	o := orderedmap.New()
	o.Set("Name", a.Name)
	o.Set("Address", a.Address)
	o.Set("Phone", a.Phone)
	o.Set("Date", a.Date)
	o.Set("Time", a.TimeSlot)
	return o
}

func detailsText(a *Appointment) string {
	o := details(a)
	lines := make([]string, 0, len(o.Keys()))
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		lines = append(lines, fmt.Sprintf("%s: %v", k, v))
	}
	return strings.Join(lines, "\n")
}

func reservationsText(list []Appointment) string {
	if len(list) == 0 {
		return noReservations
	}
	lines := make([]string, 0, len(list))
	for _, a := range list {
		lines = append(lines, fmt.Sprintf("Name: %s, Time: %s, Identity: %s", a.Name, a.TimeSlot, a.IdentityNumber))
	}
	return strings.Join(lines, "\n")
}
