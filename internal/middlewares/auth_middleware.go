package middlewares

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenCookie = "access_token"

// AuthMiddleware accepts the access_token cookie set at login, or an
// "Authorization: Bearer" header for non-browser clients.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := bearerToken(c.GetHeader("Authorization"))
		if accessToken == "" {
			cookie, err := c.Cookie(AccessTokenCookie)
			if err != nil || cookie == "" {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing access token"})
				c.Abort()
				return
			}
			accessToken = cookie
		}

		token, err := jwt.Parse(accessToken, func(token *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var staffID float64
		switch v := claims["staff_id"].(type) {
		case float64:
			staffID = v
		case string:
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid staff ID"})
				c.Abort()
				return
			}
			staffID = f
		default:
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid staff ID"})
			c.Abort()
			return
		}
		if staffID <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid staff ID"})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)

		c.Set("staffID", uint(staffID))
		c.Set("role", role)
		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) > len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return ""
}

// StaffID returns the authenticated staff member, or nil on unguarded routes.
func StaffID(c *gin.Context) *uint {
	v, ok := c.Get("staffID")
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
