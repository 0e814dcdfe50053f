package auth

import (
	"clinic-desk-api/internal/logs"
	"clinic-desk-api/internal/middlewares"
	"clinic-desk-api/internal/util"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const accessTokenTTL = 12 * time.Hour

type AuthController struct {
	AuthService AuthServicePort
	LS          LogServicePort
	Secret      string
	// SecureCookies marks the session cookie Secure; off only for plain-HTTP local runs.
	SecureCookies bool
}

func (ac *AuthController) logEvent(entry logs.SystemLog, payload any) {
	if err := ac.LS.Log(entry, payload); err != nil {
		log.Error().Err(err).Str("action", entry.Action).Msg("Failed to insert log")
	}
}

func (ac *AuthController) SignUp(c *gin.Context) {
	var req struct {
		FirstName string `json:"firstname" binding:"required"`
		LastName  string `json:"lastname" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	password, err := util.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	staff, err := ac.AuthService.CreateStaff(Staff{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  password,
	})
	if err != nil {
		if errors.Is(err, ErrStaffExists) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ac.logEvent(logs.SystemLog{
		Level:   logs.LevelInfo,
		Service: "auth",
		Action:  "SIGNUP",
		Message: fmt.Sprintf("Staff account created with email %s", staff.Email),
		StaffID: &staff.ID,
	}, nil)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Staff account created successfully",
		"staff":   toLoginResponse(staff),
	})
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	const badLogin = "Oops! We couldn't log you in. Please check your email and password and try again."

	staff, err := ac.AuthService.GetStaff(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": badLogin})
		return
	}

	if err := util.VerifyPassword(req.Password, staff.Password); err != nil {
		ac.logEvent(logs.SystemLog{
			Level:   logs.LevelWarn,
			Service: "auth",
			Action:  "LOGIN_FAILED",
			Message: fmt.Sprintf("Wrong password for %s", staff.Email),
			StaffID: &staff.ID,
		}, nil)
		c.JSON(http.StatusUnauthorized, gin.H{"error": badLogin})
		return
	}

	exp := time.Now().Add(accessTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"staff_id": staff.ID,
		"role":     staff.Role,
		"exp":      exp.Unix(),
	})
	tokenString, err := token.SignedString([]byte(ac.Secret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.AccessTokenCookie,
		Value:    tokenString,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	ac.logEvent(logs.SystemLog{
		Level:   logs.LevelInfo,
		Service: "auth",
		Action:  "LOGIN",
		Message: fmt.Sprintf("Staff logged in with email: %s", staff.Email),
		StaffID: &staff.ID,
	}, nil)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   tokenString,
		"data":    toLoginResponse(staff),
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     middlewares.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   ac.SecureCookies,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me must run behind middlewares.AuthMiddleware.
func (ac *AuthController) Me(c *gin.Context) {
	staffID := middlewares.StaffID(c)
	if staffID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "staff ID not found"})
		return
	}

	staff, err := ac.AuthService.GetStaffByID(*staffID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Staff member not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"staff": toLoginResponse(staff)})
}
