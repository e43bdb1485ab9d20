package controller

import (
	"errors"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"

	"github.com/JPAVictoria/LOA-Tabulation/internals/configs"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/users/dto"
	"github.com/JPAVictoria/LOA-Tabulation/internals/features/users/model"
	helper "github.com/JPAVictoria/LOA-Tabulation/internals/helpers"
)

var validate = validator.New()

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// POST /api/auth/login
// Credentials are compared by exact match against live users. A judge's
// competition assignment rides along so the client can route them to the
// right scoring screen.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid input format")
	}
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	err := ac.DB.
		Where("username = ? AND password = ? AND deleted = ?", req.Username, req.Password, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.Error(c, fiber.StatusUnauthorized, "Invalid username or password")
	}
	if err != nil {
		log.Println("[ERROR] login lookup:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to log in")
	}

	token, err := signToken(&user)
	if err != nil {
		log.Println("[ERROR] sign token:", err)
		return helper.Error(c, fiber.StatusInternalServerError, "Failed to log in")
	}

	return helper.Success(c, "Logged in successfully", dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(&user),
	})
}

func signToken(user *model.UserModel) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(12 * time.Hour).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
