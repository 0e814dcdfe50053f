package appointment

import (
	"clinic-desk-api/internal/logs"
	"clinic-desk-api/internal/middlewares"
	"clinic-desk-api/internal/util"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	Service  AppointmentServiceAPI
	Archive  ArchiveServiceAPI
	LS       LogServicePort
	SlotMode string
}

const (
	msgSaveFailed   = "Failed to save appointment!"
	msgEditFailed   = "Failed to edit appointment!"
	msgDeleteFailed = "Failed to delete appointment!"
	msgListFailed   = "Failed to load reservations!"
)

// writeError maps store errors to responses. Storage failures never leak
// the driver message to the client.
func writeError(c *gin.Context, err error, storageMsg string) {
	var se *StorageError
	switch {
	case IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, ErrDuplicateIdentity):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &se):
		util.LogError(err, storageMsg, map[string]interface{}{
			"op":         se.Op,
			"request_id": middlewares.RequestIDFrom(c),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageMsg})
	default:
		util.LogError(err, storageMsg, map[string]interface{}{"request_id": middlewares.RequestIDFrom(c)})
		c.JSON(http.StatusInternalServerError, gin.H{"error": storageMsg})
	}
}

func (ac *AppointmentController) audit(c *gin.Context, action string, a *Appointment, msg string) {
	if ac.LS == nil {
		return
	}
	identity := a.IdentityNumber
	entry := logs.SystemLog{
		Level:          logs.LevelInfo,
		Service:        "appointment",
		StaffID:        middlewares.StaffID(c),
		Action:         action,
		Message:        msg,
		IdentityNumber: &identity,
	}
	if err := ac.LS.Log(entry, gin.H{"appointment_id": a.ID, "date": a.Date, "time_slot": a.TimeSlot}); err != nil {
		util.LogError(err, "Failed to insert log", map[string]interface{}{"action": action})
	}
}

// identityParam is the lookup key from the path, trimmed the same way a
// stored identity number is.
func identityParam(c *gin.Context) string {
	return strings.TrimSpace(c.Param("identity"))
}

func (ac *AppointmentController) toAppointment(in AppointmentInput) (Appointment, error) {
	slot, err := SelectTimeSlot(in.checkedSlots(), ac.SlotMode)
	if err != nil {
		return Appointment{}, err
	}
	return Appointment{
		Name:           in.Name,
		IdentityNumber: strings.TrimSpace(in.IdentityNumber),
		Address:        in.Address,
		Phone:          in.Phone,
		Date:           in.Date,
		TimeSlot:       slot,
	}, nil
}

func (ac *AppointmentController) GetTimeSlots(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"time_slots": TimeSlots()})
}

func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	var in AppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := ac.toAppointment(in)
	if err != nil {
		writeError(c, err, msgSaveFailed)
		return
	}

	created, err := ac.Service.Create(a)
	if err != nil {
		writeError(c, err, msgSaveFailed)
		return
	}

	ac.audit(c, "APPOINTMENT_CREATED", created,
		fmt.Sprintf("Booked %s %s for identity %s", created.Date, created.TimeSlot, created.IdentityNumber))

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Appointment saved successfully!",
		"appointment": created,
	})
}

func (ac *AppointmentController) GetAppointment(c *gin.Context) {
	a, err := ac.Service.FindByIdentity(identityParam(c))
	if err != nil {
		writeError(c, err, "Failed to load appointment!")
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, detailsText(a))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointment": a,
		"details":     details(a),
	})
}

func (ac *AppointmentController) UpdateAppointment(c *gin.Context) {
	var in AppointmentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	a, err := ac.toAppointment(in)
	if err != nil {
		writeError(c, err, msgEditFailed)
		return
	}

	updated, err := ac.Service.UpdateByIdentity(identityParam(c), a)
	if err != nil {
		writeError(c, err, msgEditFailed)
		return
	}

	ac.audit(c, "APPOINTMENT_UPDATED", updated,
		fmt.Sprintf("Updated appointment %d for identity %s", updated.ID, updated.IdentityNumber))

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment updated successfully!",
		"appointment": updated,
	})
}

func (ac *AppointmentController) DeleteAppointment(c *gin.Context) {
	deleted, err := ac.Service.DeleteByIdentity(identityParam(c))
	if err != nil {
		writeError(c, err, msgDeleteFailed)
		return
	}

	ac.audit(c, "APPOINTMENT_DELETED", deleted,
		fmt.Sprintf("Deleted appointment %d for identity %s", deleted.ID, deleted.IdentityNumber))

	c.JSON(http.StatusOK, gin.H{
		"message":     "Appointment deleted successfully!",
		"appointment": deleted,
	})
}

func (ac *AppointmentController) ListAppointments(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	day, err := NormalizeDate(strings.TrimSpace(date))
	if err != nil {
		writeError(c, err, msgListFailed)
		return
	}

	list, err := ac.Service.ListByDate(day)
	if err != nil {
		writeError(c, err, msgListFailed)
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, reservationsText(list))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":         day,
		"count":        len(list),
		"appointments": list,
	})
}

func (ac *AppointmentController) ExportSchedule(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	contentType, filename, data, err := ac.Service.ExportDay(date, c.DefaultQuery("format", "excel"))
	if err != nil {
		writeError(c, err, "Failed to export reservations!")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, contentType, data)
}

func (ac *AppointmentController) ArchiveSchedule(c *gin.Context) {
	if ac.Archive == nil || !ac.Archive.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrArchiveDisabled.Error()})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date is required"})
		return
	}

	url, err := ac.Archive.ArchiveDay(c.Request.Context(), date)
	if err != nil {
		if IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		util.LogError(err, "archive schedule failed", map[string]interface{}{"date": date})
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to archive reservations!"})
		return
	}

	if ac.LS != nil {
		if err := ac.LS.Log(logs.SystemLog{
			Level:   logs.LevelInfo,
			Service: "appointment",
			StaffID: middlewares.StaffID(c),
			Action:  "SCHEDULE_ARCHIVED",
			Message: fmt.Sprintf("Archived day sheet %s", date),
		}, gin.H{"url": url}); err != nil {
			util.LogError(err, "Failed to insert log", map[string]interface{}{"action": "SCHEDULE_ARCHIVED"})
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Day sheet archived",
		"url":     url,
	})
}

func (ac *AppointmentController) ListArchivedSchedules(c *gin.Context) {
	if ac.Archive == nil || !ac.Archive.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrArchiveDisabled.Error()})
		return
	}

	names, err := ac.Archive.ListArchives(c.Request.Context())
	if err != nil {
		util.LogError(err, "list archives failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to list archived reservations!"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"archives": names})
}
