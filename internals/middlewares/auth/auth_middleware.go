package auth

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/configs"
	userModel "github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
)

// AuthMiddleware verifies the bearer token and loads the live user behind
// it. The token only transports identity; the user row is re-read on every
// request so a soft-deleted account drops out immediately.
func AuthMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid token")
		}

		userID, ok := extractUserID(claims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - invalid or missing user ID")
		}

		var user userModel.UserModel
		err = db.Where("id = ? AND deleted = ?", userID, false).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - user not found")
		}
		if err != nil {
			log.Println("[ERROR] auth user lookup:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal server error")
		}

		c.Locals("user_id", user.ID)
		c.Locals("username", user.Username)
		c.Locals("userRole", user.Role)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("Unauthorized - missing Authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("Unauthorized - malformed Authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}

func extractUserID(claims jwt.MapClaims) (uint, bool) {
	raw, ok := claims["user_id"]
	if !ok {
		return 0, false
	}
	// numbers arrive as float64 from the JSON decoder
	if f, ok := raw.(float64); ok && f > 0 {
		return uint(f), true
	}
	return 0, false
}
