package logs

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, logService *LogService, middleware ...gin.HandlerFunc) {
	logController := &LogController{LogService: logService}

	logGroup := r.Group("/api/logs")
	logGroup.Use(middleware...)
	{
		logGroup.POST("", logController.GetLogs)
	}
}
