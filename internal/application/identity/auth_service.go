package identity

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shopfront/backend/internal/domain/identity"
	"github.com/shopfront/backend/internal/domain/shared"
	"github.com/shopfront/backend/internal/infrastructure/auth"
	"github.com/shopfront/backend/internal/infrastructure/config"
)

// AuthService handles admin authentication
type AuthService struct {
	adminRepo  identity.Repository
	jwtService *auth.JWTService
	config     config.AuthConfig
	logger     *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	adminRepo identity.Repository,
	jwtService *auth.JWTService,
	cfg config.AuthConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		adminRepo:  adminRepo,
		jwtService: jwtService,
		config:     cfg,
		logger:     logger,
	}
}

// Login authenticates an admin and returns a token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.ToLower(strings.TrimSpace(req.Username))

	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		s.logger.Warn("Admin not found during login", zap.String("username", username))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	if !admin.CanLogin() {
		if admin.IsLocked() {
			s.logger.Warn("Login attempt for locked account", zap.String("username", username))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Account is locked. Please try again later")
		}
		s.logger.Warn("Login attempt for deactivated account", zap.String("username", username))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !admin.VerifyPassword(req.Password) {
		locked := admin.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.adminRepo.Save(ctx, admin); err != nil {
			s.logger.Error("Failed to save admin after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after too many failed attempts",
				zap.String("username", username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
			return nil, shared.NewDomainError("ACCOUNT_LOCKED", "Too many failed login attempts. Account has been locked")
		}

		s.logger.Warn("Invalid password attempt",
			zap.String("username", username),
			zap.Int("failed_attempts", admin.FailedAttempts))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(admin.ID, admin.Username)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	admin.RecordLoginSuccess()
	if err := s.adminRepo.Save(ctx, admin); err != nil {
		// login still succeeds, only the bookkeeping write failed
		s.logger.Error("Failed to save admin after successful login", zap.Error(err))
	}

	s.logger.Info("Admin logged in",
		zap.String("username", username),
		zap.String("admin_id", admin.ID.String()))

	return &LoginResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		Admin: AdminInfo{
			ID:          admin.ID,
			Username:    admin.Username,
			DisplayName: admin.DisplayName,
		},
	}, nil
}

// RefreshToken renews the token pair from a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*RefreshTokenResponse, error) {
	claims, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	adminID, err := claims.GetAdminUUID()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}
	if !admin.CanLogin() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(req.RefreshToken)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_TOKEN", "Refresh token is invalid or expired")
	}

	return &RefreshTokenResponse{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// GetCurrentAdmin returns the profile of the authenticated admin
func (s *AuthService) GetCurrentAdmin(ctx context.Context, adminID uuid.UUID) (*AdminInfo, error) {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}

	return &AdminInfo{
		ID:          admin.ID,
		Username:    admin.Username,
		DisplayName: admin.DisplayName,
	}, nil
}

// ChangePassword changes the authenticated admin's password
func (s *AuthService) ChangePassword(ctx context.Context, adminID uuid.UUID, req ChangePasswordRequest) error {
	admin, err := s.adminRepo.FindByID(ctx, adminID)
	if err != nil {
		return err
	}

	if err := admin.ChangePassword(req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return s.adminRepo.Save(ctx, admin)
}
