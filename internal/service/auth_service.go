package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/0xFF-test/TikRewards/internal/dto"
	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/pkg/apperror"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const tokenLifetime = 7 * 24 * time.Hour

type AuthService interface {
	// Login resolves an email to a user, provisioning a fresh viewer account
	// on first sight, and issues a signed token. Accounts with a password
	// hash (admins) must also present the matching password.
	Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	secret   string
}

func NewAuthService(userRepo repository.UserRepository) AuthService {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "12345"
	}

	return &authService{
		userRepo: userRepo,
		secret:   secret,
	}
}

func (s *authService) Login(ctx context.Context, input dto.LoginInput) (*dto.LoginResponse, error) {
	email := strings.ToLower(input.Email)

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err == gorm.ErrRecordNotFound {
		user = &model.User{
			Email: email,
			Role:  model.RoleViewer,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	} else if err != nil {
		return nil, err
	}

	if user.PasswordHash != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(input.Password)); err != nil {
			return nil, apperror.ErrUnauthorized
		}
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User:  toAuthUser(user),
	}, nil
}

func toAuthUser(user *model.User) dto.AuthUser {
	return dto.AuthUser{
		ID:                  user.ID.String(),
		Email:               user.Email,
		Role:                user.Role,
		PointsBalance:       user.PointsBalance,
		FreeSubmissionsUsed: user.FreeSubmissionsUsed,
		OnboardingCompleted: user.OnboardingCompleted,
		FollowedMainAccount: user.FollowedMainAccount,
	}
}
