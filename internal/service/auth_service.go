package service

import (
	"context"
	"errors"
	"time"

	"github.com/srikumaragency/b-admin-prod-03/internal/config"
	"github.com/srikumaragency/b-admin-prod-03/internal/dto"
	"github.com/srikumaragency/b-admin-prod-03/internal/model"
	"github.com/srikumaragency/b-admin-prod-03/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Token types carried in the "typ" claim.
const (
	tokenAccess  = "access"
	tokenRefresh = "refresh"
)

// BcryptCost is shared with the seeding and hashing commands.
const BcryptCost = 12

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	repo repository.AdminRepository
	cfg  *config.Config
}

func NewAuthService(repo repository.AdminRepository, cfg *config.Config) AuthService {
	return &authService{repo: repo, cfg: cfg}
}

var errBadCredentials = newError(ErrUnauthorized, "invalid email or password")

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	admin, err := s.repo.FindByEmail(ctx, req.Login())
	if err != nil {
		return nil, errBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errBadCredentials
	}
	return s.issue(admin)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, newError(ErrUnauthorized, "refresh token invalid or expired")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != tokenRefresh {
		return nil, newError(ErrUnauthorized, "not a refresh token")
	}
	idStr, _ := claims["admin_id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, newError(ErrUnauthorized, "malformed token")
	}

	admin, err := s.repo.FindByID(ctx, id)
	if err != nil || !admin.IsActive {
		return nil, newError(ErrUnauthorized, "admin not found or inactive")
	}
	return s.issue(admin)
}

func (s *authService) issue(admin *model.Admin) (*dto.LoginResponse, error) {
	access, err := s.sign(admin, tokenAccess, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(admin, tokenRefresh, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Admin: dto.AdminResponse{
			ID:     admin.ID.String(),
			Email:  admin.Email,
			Name:   admin.Name,
			Rol:    admin.Rol,
			Branch: admin.Branch,
		},
	}, nil
}

func (s *authService) sign(admin *model.Admin, typ string, ttl time.Duration) (string, error) {
	if s.cfg.JWTSecret == "" {
		return "", errors.New("auth: JWT secret not configured")
	}
	now := time.Now()
	claims := jwt.MapClaims{
		"admin_id": admin.ID.String(),
		"email":    admin.Email,
		"rol":      admin.Rol,
		"typ":      typ,
		"exp":      now.Add(ttl).Unix(),
		"iat":      now.Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.JWTSecret))
}

// HashPassword is the bcrypt hash stored for admins.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	return string(h), err
}
