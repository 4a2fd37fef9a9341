// services/auth_service.go
package services

import (
	"errors"
	"time"

	"cleaning-crm/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ErrInvalidCredentials is returned for both unknown emails and wrong
// passwords so login failures are indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, secret []byte) *AuthService {
	return &AuthService{DB: db, Secret: secret, TokenTTL: 24 * time.Hour}
}

type LoginResult struct {
	Token string        `json:"token"`
	Admin *models.Admin `json:"admin"`
}

// Login checks the admin's password and issues a signed HS256 token.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	var admin models.Admin
	if err := s.DB.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   float64(admin.ID),
		"email": admin.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.TokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, Admin: &admin}, nil
}
