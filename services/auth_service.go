package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
)

type AuthService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret []byte, ttl time.Duration) *AuthService {
	return &AuthService{DB: db, Secret: secret, TokenTTL: ttl}
}

type LoginResult struct {
	Token string       `json:"token"`
	Admin models.Admin `json:"admin"`
}

// Login checks the credentials and issues a token scoped to the admin's
// restaurant. Unknown email and wrong password are indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var admin models.Admin
	err := s.DB.WithContext(ctx).Where("email = ?", email).First(&admin).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.Secret, admin.ID, admin.RestaurantID, s.TokenTTL)
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.WithField("admin_id", admin.ID).Info("Admin logged in")
	return &LoginResult{Token: token, Admin: admin}, nil
}
