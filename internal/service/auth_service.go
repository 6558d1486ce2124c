package service

import (
	"context"
	"errors"
	"time"

	"github.com/alimarchal/maharat-sub001/internal/apierror"
	"github.com/alimarchal/maharat-sub001/internal/config"
	"github.com/alimarchal/maharat-sub001/internal/dto"
	"github.com/alimarchal/maharat-sub001/internal/model"
	"github.com/alimarchal/maharat-sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}

type authService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewAuthService(users repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{users: users, cfg: cfg}
}

var errInvalidCredentials = apierror.Unauthorized("Invalid credentials")

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive || !user.CheckPassword(req.Password) {
		return nil, errInvalidCredentials
	}

	ttl := time.Duration(s.cfg.JWTExpirationHours) * time.Hour
	token, err := GenerateToken(user, s.cfg.JWTSecret, ttl)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(ttl.Seconds()),
		User:        user,
	}, nil
}

// GenerateToken signs an HS256 access token carrying the user's id, email and
// role names.
func GenerateToken(user *model.User, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     user.ID.String(),
		"user_id": user.ID.String(),
		"email":   user.Email,
		"roles":   user.RoleNames(),
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
