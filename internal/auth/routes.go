package auth

import (
	"clinic-desk-api/internal/middlewares"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, ac *AuthController) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/signup", ac.SignUp)
		authGroup.POST("/login", ac.Login)
		authGroup.POST("/logout", ac.Logout)
		authGroup.GET("/me", middlewares.AuthMiddleware(ac.Secret), ac.Me)
	}
}
