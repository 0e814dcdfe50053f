package appointment

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, ac *AppointmentController, middleware ...gin.HandlerFunc) {
	api := r.Group("/api", middleware...)
	{
		api.GET("/timeslots", ac.GetTimeSlots)

		api.POST("/appointments", ac.CreateAppointment)
		api.GET("/appointments", ac.ListAppointments)
		api.GET("/appointments/:identity", ac.GetAppointment)
		api.PUT("/appointments/:identity", ac.UpdateAppointment)
		api.DELETE("/appointments/:identity", ac.DeleteAppointment)

		api.GET("/schedule/export", ac.ExportSchedule)
		api.POST("/schedule/archive", ac.ArchiveSchedule)
		api.GET("/schedule/archive", ac.ListArchivedSchedules)
	}
}
