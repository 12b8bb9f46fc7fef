package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playgrid/playgrid-api/internal/domain/user"
	"github.com/playgrid/playgrid-api/internal/pkg/jwt"
	"github.com/playgrid/playgrid-api/internal/pkg/password"
)

// Service handles registration, login and token rotation
type Service struct {
	userRepo user.Repository
	jwt      *jwt.Service
	tokens   TokenStore
}

// NewService creates auth service
func NewService(userRepo user.Repository, jwtService *jwt.Service, tokens TokenStore) *Service {
	return &Service{
		userRepo: userRepo,
		jwt:      jwtService,
		tokens:   tokens,
	}
}

// Register creates a new account and issues tokens
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := user.RoleCustomer
	if req.Role == string(user.RoleOwner) {
		role = user.RoleOwner
	}

	now := time.Now()
	u := &user.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		FullName:     req.FullName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if req.Phone != "" {
		u.Phone.String = req.Phone
		u.Phone.Valid = true
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if err == user.ErrEmailTaken {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Str("role", string(u.Role)).Msg("user registered")

	return s.issueTokens(ctx, u)
}

// Login authenticates by email/password and issues tokens
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, err
	}
	if u == nil || !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	if err := s.userRepo.UpdateLastLogin(ctx, u.ID); err != nil {
		log.Warn().Err(err).Str("user_id", u.ID.String()).Msg("failed to update last login")
	}

	return s.issueTokens(ctx, u)
}

// Refresh rotates the refresh token and issues a fresh pair
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}

	hash := jwt.HashRefreshToken(refreshToken)
	userID, err := s.tokens.Lookup(ctx, hash)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if userID != claims.UserID {
		return nil, ErrInvalidRefresh
	}

	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidRefresh
	}
	if !u.IsActive {
		return nil, ErrAccountDisabled
	}

	// Rotation: the presented token is single-use.
	if err := s.tokens.Delete(ctx, hash); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, u)
}

// Logout invalidates the presented refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	if _, err := s.jwt.ValidateRefreshToken(refreshToken); err != nil {
		return ErrInvalidRefresh
	}
	return s.tokens.Delete(ctx, jwt.HashRefreshToken(refreshToken))
}

// GetCurrentUser returns the authenticated user's profile
func (s *Service) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}
	resp := NewUserResponse(u)
	return &resp, nil
}

func (s *Service) issueTokens(ctx context.Context, u *user.User) (*AuthResponse, error) {
	accessToken, err := s.jwt.GenerateAccessToken(u.ID, string(u.Role), u.IsActive)
	if err != nil {
		return nil, err
	}

	refreshToken, _, _, err := s.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.Save(ctx, jwt.HashRefreshToken(refreshToken), u.ID, s.jwt.GetRefreshTTL()); err != nil {
		return nil, err
	}

	return &AuthResponse{
		User: NewUserResponse(u),
		Tokens: TokensResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresIn:    int(s.jwt.GetAccessTTL().Seconds()),
			TokenType:    "Bearer",
		},
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
