package middleware

import (
	"net/http"
	"strings"
	"time"

	"food-marketplace-api/config"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const principalKey = "principal"

// Claims carries only identity. Role flags are deliberately absent: every
// authorization decision re-reads them from the database, so a stale or
// forged token can never grant a capability the user does not hold.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed JWT for a given user.
func GenerateToken(user *models.User) (string, error) {
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.JWTSecret())
}

// AuthRequired validates the bearer token and loads the principal from the
// database into the request context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required (Bearer <token>)"})
			c.Abort()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			return config.JWTSecret(), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := config.DB.First(&user, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
			c.Abort()
			return
		}

		c.Set(principalKey, &user)
		c.Next()
	}
}

// GetPrincipal returns the authenticated user loaded by AuthRequired.
func GetPrincipal(c *gin.Context) *models.User {
	val, _ := c.Get(principalKey)
	return val.(*models.User)
}

// AdminRequired allows only principals with the admin flag.
func AdminRequired() gin.HandlerFunc {
	return requireFlag(func(u *models.User) bool { return u.IsAdmin }, "admin")
}

// RestaurantRequired allows only principals with the restaurant-owner flag.
func RestaurantRequired() gin.HandlerFunc {
	return requireFlag(func(u *models.User) bool { return u.IsRestaurant }, "restaurant")
}

// CourierRequired allows only principals with the courier flag. Approval of
// the courier profile is checked separately in the store, so this is the
// first of the two layers.
func CourierRequired() gin.HandlerFunc {
	return requireFlag(func(u *models.User) bool { return u.IsCourier }, "courier")
}

func requireFlag(allowed func(*models.User) bool, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetPrincipal(c)
		if !allowed(user) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Required role: " + role})
			c.Abort()
			return
		}
		c.Next()
	}
}
