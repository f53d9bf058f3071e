package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"relove/internal/model"
	"relove/internal/repository"
	"relove/internal/utils"
	"relove/pkg/log"
	pkgutils "relove/pkg/utils"
)

// RegisterRequest register request
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse token response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// AuthService authentication service interface
type AuthService interface {
	// Register user
	Register(ctx context.Context, req *RegisterRequest) (*model.User, error)

	// Login user
	Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error)

	// Logout user, blacklisting the presented token
	Logout(ctx context.Context, userID, token string) error

	// Validate token
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)

	// Refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error)

	// Get profile
	GetProfile(ctx context.Context, userID string) (*model.User, error)
}

// authService authentication service implementation
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	redis      *redis.Client
	expire     time.Duration
}

// NewAuthService creates an authentication service
func NewAuthService(
	userRepo repository.UserRepository,
	jwtManager *utils.JWTManager,
	redis *redis.Client,
	expire time.Duration,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		redis:      redis,
		expire:     expire,
	}
}

// Register registers a user
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*model.User, error) {
	log.WithField("email", req.Email).Info("user register")

	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		log.WithError(err).Error("check email failed")
		return nil, pkgutils.ErrDatabaseError
	}
	if exists {
		return nil, pkgutils.NewError(pkgutils.CodeInvalidParam, "email already registered")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("hash password failed")
		return nil, pkgutils.ErrInternalError
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         model.RoleUser,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		log.WithError(err).Error("create user failed")
		return nil, pkgutils.ErrDatabaseError
	}

	log.WithField("user_id", user.ID).Info("user register success")
	return user, nil
}

// Login logs in a user
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		log.WithField("email", req.Email).Warn("login user not found")
		return nil, pkgutils.NewError(pkgutils.CodeUnauthorized, "email or password incorrect")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, pkgutils.NewError(pkgutils.CodeUnauthorized, "email or password incorrect")
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		log.WithError(err).Error("generate access token failed")
		return nil, pkgutils.ErrInternalError
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Email)
	if err != nil {
		log.WithError(err).Error("generate refresh token failed")
		return nil, pkgutils.ErrInternalError
	}

	tokenKey := fmt.Sprintf("auth:token:%s", user.ID)
	s.redis.Set(ctx, tokenKey, accessToken, s.expire)

	log.WithField("user_id", user.ID).Info("user login success")

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.expire.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

// Logout logs out a user
func (s *authService) Logout(ctx context.Context, userID, token string) error {
	tokenKey := fmt.Sprintf("auth:token:%s", userID)
	s.redis.Del(ctx, tokenKey)

	// Blacklist the token until it would have expired anyway.
	blacklistKey := fmt.Sprintf("auth:blacklist:%s", token)
	s.redis.Set(ctx, blacklistKey, "1", s.expire)

	log.WithField("user_id", userID).Info("user logout")
	return nil
}

// ValidateToken validates a token, rejecting blacklisted ones
func (s *authService) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	blacklistKey := fmt.Sprintf("auth:blacklist:%s", token)
	if exists, _ := s.redis.Exists(ctx, blacklistKey).Result(); exists > 0 {
		return nil, pkgutils.ErrUnauthenticated
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, pkgutils.ErrUnauthenticated
	}
	return claims, nil
}

// RefreshToken issues a fresh access token from a refresh token
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	accessToken, err := s.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, pkgutils.ErrUnauthenticated
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(s.expire.Seconds()),
		TokenType:    "Bearer",
	}, nil
}

// GetProfile returns the authenticated user's profile
func (s *authService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
