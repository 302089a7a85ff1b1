package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/afrilogistic/transport_marketplace/internal/apperrors"
	"github.com/afrilogistic/transport_marketplace/internal/core/domain"
	portsrepo "github.com/afrilogistic/transport_marketplace/internal/core/ports/repositories"
	portssvc "github.com/afrilogistic/transport_marketplace/internal/core/ports/services"
	"github.com/afrilogistic/transport_marketplace/internal/dto"
	"github.com/afrilogistic/transport_marketplace/internal/middleware"
	"github.com/afrilogistic/transport_marketplace/internal/utils"
)

// ErrInvalidCredentials is returned on any login failure. It deliberately does
// not distinguish an unknown email from a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthConfig carries token issuance settings.
type AuthConfig struct {
	JWTSecret string
	JWTExpiry time.Duration
	Issuer    string
}

// authService verifies credentials and issues signed tokens.
type authService struct {
	userRepo portsrepo.UserRepositoryFacade
	cfg      AuthConfig
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg AuthConfig) portssvc.AuthSvcFacade {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (string, *domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}
	if user.IsBlocked {
		return "", nil, fmt.Errorf("%w: account is blocked", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.Issuer)
	if err != nil {
		logger.Error("failed to sign token", slog.String("error", err.Error()))
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	logger.Info("user logged in", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return token, user, nil
}

func (s *authService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}
